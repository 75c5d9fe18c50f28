package feed

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"roamsync/internal/config"
	"roamsync/utility"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const wsEndpoint = "/feed/:id"

// Server accepts websocket connections from inventory sources and
// hands every received change-event frame to the message handler.
type Server struct {
	conf           *config.Config
	httpServer     *http.Server
	router         *httprouter.Router
	upgrader       websocket.Upgrader
	messageHandler func(source string, data []byte) error
}

func NewServer(conf *config.Config) *Server {
	server := Server{
		conf:     conf,
		upgrader: websocket.Upgrader{Subprotocols: []string{}},
	}
	router := httprouter.New()
	server.Register(router)
	server.router = router
	server.httpServer = &http.Server{
		Handler: router,
	}
	return &server
}

// Router exposes the underlying router so other handlers can mount
// their endpoints on the same listener.
func (s *Server) Router() *httprouter.Router {
	return s.router
}

func (s *Server) SetMessageHandler(handler func(source string, data []byte) error) {
	s.messageHandler = handler
}

func (s *Server) Register(router *httprouter.Router) {
	router.GET(wsEndpoint, s.handleWsRequest)
}

func (s *Server) handleWsRequest(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	log.Printf("feed connection initiated from remote %s", r.RemoteAddr)

	s.upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}

	clientSubProto := websocket.Subprotocols(r)
	requestedProto := ""
	for _, proto := range clientSubProto {
		if len(s.upgrader.Subprotocols) == 0 {
			// supporting all protocols
			requestedProto = proto
			break
		}
		if utility.Contains(s.upgrader.Subprotocols, proto) {
			requestedProto = proto
			break
		}
	}
	responseHeader := http.Header{}
	if requestedProto != "" {
		responseHeader.Add("Sec-WebSocket-Protocol", requestedProto)
	}

	conn, err := s.upgrader.Upgrade(w, r, responseHeader)
	if err != nil {
		log.Println("upgrade failed: ", err)
		return
	}

	log.Printf("[%s] feed socket up, ready to receive events", id)
	go s.messageReader(id, conn)
}

func (s *Server) messageReader(id string, conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[%s] error: %s; closing feed session", id, err)
			return
		}
		if s.messageHandler != nil {
			err = s.messageHandler(id, message)
			if err != nil {
				log.Printf("[%s] error: %s", id, err)
				continue
			}
		}
	}
}

func (s *Server) Start() error {
	if s.conf == nil {
		return utility.Err("configuration not loaded")
	}
	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	log.Printf("starting feed server on %s", serverAddress)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}
	if s.conf.Listen.TLS {
		return s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	}
	return s.httpServer.Serve(listener)
}
