package models

const (
	MessageDeleted        = "Silindi"
	MessageReceived       = "Mesaj alındı"
	MessageMessageDeleted = "Mesaj silindi"
)

// MenuItemRequest is the body of POST /api/menu and PUT /api/menu/{id}.
// Price is a pointer so that an absent price can be told apart from 0.
type MenuItemRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
}

type MenuItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type MessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type Message struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

type StatusResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
