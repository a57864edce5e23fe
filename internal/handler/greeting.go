package handler

import (
	"github.com/deppfellow/heroes/internal/server"
	"github.com/labstack/echo/v4"
)

// GreetingMessage is the body of GET /.
const GreetingMessage = "Hello World Winnie"

type GreetingHandler struct {
	Handler
}

func NewGreetingHandler(s *server.Server) *GreetingHandler {
	return &GreetingHandler{
		Handler: NewHandler(s),
	}
}

// GreetingRequest takes no input.
type GreetingRequest struct{}

func (r *GreetingRequest) Validate() error {
	return nil
}

type GreetingResponse struct {
	Message string `json:"message"`
}

// Greet answers with a fixed greeting. It touches no storage.
func (h *GreetingHandler) Greet(c echo.Context, _ *GreetingRequest) (*GreetingResponse, error) {
	return &GreetingResponse{Message: GreetingMessage}, nil
}
