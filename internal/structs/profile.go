package structs

import "time"

const (
	UserTypeCustomer = "customer"
	UserTypeVendor   = "vendor"
)

type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	UserType  string    `json:"user_type"`
	Phone     string    `json:"phone,omitempty"`
	// TelegramChatID receives new-order pings for vendor accounts. Zero
	// means the vendor never linked a chat.
	TelegramChatID int64     `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PatchProfile struct {
	UserID         string  `json:"-"`
	FullName       *string `json:"full_name"`
	Phone          *string `json:"phone"`
	TelegramChatID *int64  `json:"telegram_chat_id"`
}
