package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/websocket"
	"github.com/potix/lingoproxy/message"
)

type client struct {
	writeMutex sync.Mutex
}

func (h *HttpHandler) clientRegister(conn *websocket.Conn) *client {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	h.clients[conn] = new(client)
	return h.clients[conn]
}

func (h *HttpHandler) clientUnregister(conn *websocket.Conn) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	delete(h.clients, conn)
}

func (h *HttpHandler) getClient(conn *websocket.Conn) (*client, error) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	client, ok := h.clients[conn]
	if !ok {
		return nil, fmt.Errorf("not found client %v", conn.RemoteAddr())
	}
	return client, nil
}

func (h *HttpHandler) safeWriteMessage(conn *websocket.Conn, msg *message.Message) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("can not marshal %v message to json: %w", msg.MType, err)
	}
	client, err := h.getClient(conn)
	if err != nil {
		return fmt.Errorf("can not get client, write failure %v: %w", msg.MType, err)
	}
	client.writeMutex.Lock()
	defer client.writeMutex.Unlock()
	return conn.WriteMessage(websocket.TextMessage, msgBytes)
}

func (h *HttpHandler) startPingLoop(conn *websocket.Conn, pingLoopStopChan chan int) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := h.safeWriteMessage(conn, &message.Message{MType: message.MTypePing})
			if err != nil {
				log.Printf("can not write ping message: %v", err)
				return
			}
		case <-pingLoopStopChan:
			return
		}
	}
}

func (h *HttpHandler) translateMessage(msg *message.Message) *message.Message {
	res := &message.Message{
		MType: message.MTypeTranslateRes,
		Id:    msg.Id,
	}
	if msg.Translate == nil {
		res.Error = &message.Error{Message: validationErrorMessage, Status: http.StatusBadRequest}
		return res
	}
	if err := binding.Validator.ValidateStruct(msg.Translate); err != nil {
		if h.verbose {
			log.Printf("invalid translate message: %v", err)
		}
		res.Error = &message.Error{Message: validationErrorMessage, Status: http.StatusBadRequest}
		return res
	}
	translatedText, status, errMessage := h.translate(msg.Translate)
	if status != http.StatusOK {
		res.Error = &message.Error{Message: errMessage, Status: status}
		return res
	}
	res.Result = &message.TranslateResponse{TranslatedText: translatedText}
	return res
}

func (h *HttpHandler) translationLoop(conn *websocket.Conn) {
	h.clientRegister(conn)
	defer h.clientUnregister(conn)
	defer conn.Close()
	pingStopCh := make(chan int)
	go h.startPingLoop(conn, pingStopCh)
	defer close(pingStopCh)

	for {
		t, msgJson, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if t != websocket.TextMessage {
			log.Printf("unsupported message type: %v", t)
			continue
		}
		var msg message.Message
		if err := json.Unmarshal(msgJson, &msg); err != nil {
			log.Printf("can not unmarshal message: %v", err)
			continue
		}
		switch msg.MType {
		case message.MTypePing:
			continue
		case message.MTypeTranslateReq:
			err := h.safeWriteMessage(conn, h.translateMessage(&msg))
			if err != nil {
				log.Printf("can not write translateRes message: %v", err)
			}
		default:
			log.Printf("unsupported message type: %v", msg.MType)
		}
	}
}

func (h *HttpHandler) translation(c *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		Subprotocols:    []string{"translation"},
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("can not upgrade to websocket: %v", err)
		return
	}
	go h.translationLoop(conn)
}
