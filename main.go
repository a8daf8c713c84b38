package main

import (
	"encoding/json"
	"flag"
	"log"
	"log/syslog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/potix/lingoproxy/credential"
	"github.com/potix/lingoproxy/handler"
	"github.com/potix/lingoproxy/translator"
	"github.com/potix/utils/configurator"
	"github.com/potix/utils/server"
	"github.com/potix/utils/signal"
)

type lingoproxyHttpServerConfig struct {
	Mode        string `toml:"mode"`
	AddrPort    string `toml:"addrPort"`
	TlsCertPath string `toml:"tlsCertPath"`
	TlsKeyPath  string `toml:"tlsKeyPath"`
	SkipVerify  bool   `toml:"skipVerify"`
}

type lingoproxyHttpHandlerConfig struct {
	Engine string `toml:"engine"`
	ApiUrl string `toml:"apiUrl"`
}

type lingoproxyLogConfig struct {
	UseSyslog bool `toml:"useSyslog"`
}

type lingoproxyConfig struct {
	Verbose     bool                         `toml:"verbose"`
	HttpServer  *lingoproxyHttpServerConfig  `toml:"httpServer"`
	HttpHandler *lingoproxyHttpHandlerConfig `toml:"httpHandler"`
	Log         *lingoproxyLogConfig         `toml:"log"`
}

type commandArguments struct {
	configFile string
}

const defaultAddrPort = "127.0.0.1:5000"

func verboseLoadedConfig(config *lingoproxyConfig) {
	if !config.Verbose {
		return
	}
	j, err := json.Marshal(config)
	if err != nil {
		log.Printf("can not dump config: %v", err)
		return
	}
	log.Printf("loaded config: %v", string(j))
}

func main() {
	cmdArgs := new(commandArguments)
	flag.StringVar(&cmdArgs.configFile, "config", "./lingoproxy.conf", "config file")
	flag.Parse()
	cf, err := configurator.NewConfigurator(cmdArgs.configFile)
	if err != nil {
		log.Fatalf("can not create configurator: %v", err)
	}
	var conf lingoproxyConfig
	err = cf.Load(&conf)
	if err != nil {
		log.Fatalf("can not load config: %v", err)
	}
	if conf.HttpServer == nil || conf.HttpHandler == nil {
		log.Fatalf("invalid config")
	}
	if conf.HttpServer.AddrPort == "" {
		conf.HttpServer.AddrPort = defaultAddrPort
	}
	if conf.Log != nil && conf.Log.UseSyslog {
		logger, err := syslog.New(syslog.LOG_INFO|syslog.LOG_DAEMON, "lingoproxy")
		if err != nil {
			log.Fatalf("can not create syslog: %v", err)
		}
		log.SetOutput(logger)
	}
	verboseLoadedConfig(&conf)
	apiKey := credential.Resolve(os.LookupEnv)
	if apiKey == credential.Placeholder {
		log.Printf("no api key in %v or %v, remote calls will be rejected",
			credential.EnvLingoApiKey, credential.EnvLingoDotDevApiKey)
	}
	// setup translation engine
	engine, err := translator.NewEngine(
		conf.HttpHandler.Engine,
		apiKey,
		translator.EngineVerbose(conf.Verbose),
		translator.EngineApiUrl(conf.HttpHandler.ApiUrl),
	)
	if err != nil {
		log.Fatalf("can not create translation engine: %v", err)
	}
	// setup http handler
	hhVerboseOpt := handler.HttpVerbose(conf.Verbose)
	newHttpHandler, err := handler.NewHttpHandler(
		engine,
		apiKey,
		hhVerboseOpt,
	)
	if err != nil {
		log.Fatalf("can not create http handler: %v", err)
	}
	// setup http server
	hsVerboseOpt := server.HttpServerVerbose(conf.Verbose)
	hsTlsOpt := server.HttpServerTls(conf.HttpServer.TlsCertPath, conf.HttpServer.TlsKeyPath)
	hsSkipVerifyOpt := server.HttpServerSkipVerify(conf.HttpServer.SkipVerify)
	hsModeOpt := server.HttpServerMode(conf.HttpServer.Mode)
	newHttpServer, err := server.NewHttpServer(
		conf.HttpServer.AddrPort,
		newHttpHandler,
		hsTlsOpt,
		hsSkipVerifyOpt,
		hsModeOpt,
		hsVerboseOpt,
	)
	if err != nil {
		log.Fatalf("can not create http server: %v", err)
	}
	err = newHttpServer.Start()
	if err != nil {
		log.Fatalf("can not start http server: %v", err)
	}
	log.Printf("listening on %v with %v engine", conf.HttpServer.AddrPort, engine.Name())
	signal.SignalWait(nil)
	newHttpServer.Stop()
}
