package telegram

import "encoding/json"

// apiResponse представляет стандартный конверт ответа Bot API.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type chatMemberRequest struct {
	ChatID       string `json:"chat_id"`
	UserID       int64  `json:"user_id"`
	OnlyIfBanned bool   `json:"only_if_banned,omitempty"`
}

type createInviteLinkRequest struct {
	ChatID      string `json:"chat_id"`
	Name        string `json:"name,omitempty"`
	MemberLimit int    `json:"member_limit,omitempty"`
	ExpireDate  int64  `json:"expire_date,omitempty"`
}

// ChatInviteLink представляет выпущенную инвайт-ссылку.
type ChatInviteLink struct {
	InviteLink  string `json:"invite_link"`
	Name        string `json:"name,omitempty"`
	MemberLimit int    `json:"member_limit,omitempty"`
	ExpireDate  int64  `json:"expire_date,omitempty"`
	IsRevoked   bool   `json:"is_revoked,omitempty"`
}
