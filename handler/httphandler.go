package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/potix/lingoproxy/bridge"
	"github.com/potix/lingoproxy/credential"
	"github.com/potix/lingoproxy/message"
	"github.com/potix/lingoproxy/translator"
)

type httpOptions struct {
	verbose bool
}

func defaultHttpOptions() *httpOptions {
	return &httpOptions{
		verbose: false,
	}
}

type HttpOption func(*httpOptions)

func HttpVerbose(verbose bool) HttpOption {
	return func(opts *httpOptions) {
		opts.verbose = verbose
	}
}

type HttpHandler struct {
	verbose      bool
	engine       translator.Engine
	credential   string
	clientsMutex sync.Mutex
	clients      map[*websocket.Conn]*client
}

func (h *HttpHandler) Start() error {
	return nil
}

func (h *HttpHandler) Stop() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
}

func (h *HttpHandler) SetRouting(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	router.POST("/translate", h.translateText)
	router.GET("/health", h.health)
	router.GET("/ws/translate", h.translation)
}

func (h *HttpHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, &message.HealthResponse{Status: message.StatusOk})
}

func (h *HttpHandler) translateText(c *gin.Context) {
	var req message.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.verbose {
			log.Printf("can not bind translate request: %v", err)
		}
		c.JSON(http.StatusBadRequest, &message.ErrorResponse{Error: validationErrorMessage})
		return
	}
	translatedText, status, errMessage := h.translate(&req)
	if status != http.StatusOK {
		c.JSON(status, &message.ErrorResponse{Error: errMessage})
		return
	}
	c.JSON(http.StatusOK, &message.TranslateResponse{TranslatedText: translatedText})
}

// translate expects a validated request.
func (h *HttpHandler) translate(req *message.TranslateRequest) (string, int, string) {
	if req.SourceLocale == "" {
		req.SourceLocale = message.DefaultSourceLocale
	}
	h.logRequest(req)
	translatedText, err := bridge.Run(func(ctx context.Context) (string, error) {
		return h.engine.QuickTranslate(ctx, req.Text, req.SourceLocale, req.TargetLocale)
	})
	if err != nil {
		status, errMessage := classifyError(err)
		return "", status, errMessage
	}
	return translatedText, http.StatusOK, ""
}

func (h *HttpHandler) logRequest(req *message.TranslateRequest) {
	if utf8.ValidString(req.Text) {
		log.Printf("translating: %q from %v to %v", req.Text, req.SourceLocale, req.TargetLocale)
	} else {
		log.Printf("translating text from %v to %v", req.SourceLocale, req.TargetLocale)
	}
	log.Printf("using api key: %v", credential.Prefix(h.credential))
}

func NewHttpHandler(engine translator.Engine, apiKey string, opts ...HttpOption) (*HttpHandler, error) {
	baseOpts := defaultHttpOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(baseOpts)
	}
	if engine == nil {
		return nil, fmt.Errorf("no translation engine")
	}
	return &HttpHandler{
		verbose:    baseOpts.verbose,
		engine:     engine,
		credential: apiKey,
		clients:    make(map[*websocket.Conn]*client),
	}, nil
}
