package api

// Participant is a person on the bill.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SharedBy names who shares an item. Everyone tracks the current
// participants; otherwise ParticipantIDs lists the sharers.
type SharedBy struct {
	Everyone       bool     `json:"everyone,omitempty"`
	ParticipantIDs []string `json:"participantIds,omitempty"`
}

// Item is a priced line on the bill.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	SharedBy SharedBy `json:"sharedBy"`
}

// Settings holds the bill's percentage rates.
type Settings struct {
	VAT           float64 `json:"vat"`
	ServiceCharge float64 `json:"serviceCharge"`
}

// Totals are the whole-bill amounts.
type Totals struct {
	ItemsTotal    float64 `json:"itemsTotal"`
	ServiceCharge float64 `json:"serviceCharge"`
	VAT           float64 `json:"vat"`
	Total         float64 `json:"total"`
}

// Bill is the full state of one bill with its computed totals.
type Bill struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	Items        []Item        `json:"items"`
	Settings     Settings      `json:"settings"`
	Totals       Totals        `json:"totals"`
}

// BillResponse is returned by every call that only reports the bill.
type BillResponse struct {
	Bill *Bill `json:"bill"`
}

type StartBillRequest struct{}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type AddParticipantRequest struct {
	BillID string `json:"billId"`
	Name   string `json:"name"`
}

type AddParticipantResponse struct {
	Participant Participant `json:"participant"`
	Bill        *Bill       `json:"bill"`
}

type RemoveParticipantRequest struct {
	BillID        string `json:"billId"`
	ParticipantID string `json:"participantId"`
}

// RemoveParticipantResponse lists the items deleted because the removed
// participant was their last sharer.
type RemoveParticipantResponse struct {
	RemovedItemIDs []string `json:"removedItemIds"`
	Bill           *Bill    `json:"bill"`
}

type UpdateSettingsRequest struct {
	BillID        string  `json:"billId"`
	VAT           float64 `json:"vat"`
	ServiceCharge float64 `json:"serviceCharge"`
}

type AddItemRequest struct {
	BillID   string   `json:"billId"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	SharedBy SharedBy `json:"sharedBy"`
}

type UpdateItemRequest struct {
	BillID   string   `json:"billId"`
	ItemID   string   `json:"itemId"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	SharedBy SharedBy `json:"sharedBy"`
}

type ItemResponse struct {
	Item Item  `json:"item"`
	Bill *Bill `json:"bill"`
}

type RemoveItemRequest struct {
	BillID string `json:"billId"`
	ItemID string `json:"itemId"`
}

// RemoveItemResponse reports whether an item was actually removed.
type RemoveItemResponse struct {
	Removed bool  `json:"removed"`
	Bill    *Bill `json:"bill"`
}

type ResetBillRequest struct {
	BillID string `json:"billId"`
}

// GetSummaryRequest asks for the end-of-bill breakdown. Locale is a BCP 47
// tag used for the rendered text; it defaults to English.
type GetSummaryRequest struct {
	BillID string `json:"billId"`
	Locale string `json:"locale,omitempty"`
}

type PersonItem struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type PersonSplit struct {
	ParticipantID string       `json:"participantId"`
	Name          string       `json:"name"`
	Subtotal      float64      `json:"subtotal"`
	ServiceCharge float64      `json:"serviceCharge"`
	VAT           float64      `json:"vat"`
	Total         float64      `json:"total"`
	Items         []PersonItem `json:"items"`
}

type GetSummaryResponse struct {
	Totals       Totals        `json:"totals"`
	Settings     Settings      `json:"settings"`
	People       []PersonSplit `json:"people"`
	Allocated    float64       `json:"allocated"`
	RoundingDiff float64       `json:"roundingDiff"`
	Text         string        `json:"text"`
}

// Candidate is an item read off a receipt, awaiting confirmation.
type Candidate struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Review is the receipt intake state of a bill.
type Review struct {
	Phase      string      `json:"phase"`
	Processing bool        `json:"processing"`
	Candidates []Candidate `json:"candidates"`
	Cursor     int         `json:"cursor"`
	Current    *Candidate  `json:"current,omitempty"`
	Confirmed  int         `json:"confirmed"`
	Skipped    int         `json:"skipped"`
}

type ReviewResponse struct {
	Review Review `json:"review"`
}

// ScanReceiptRequest carries the receipt either by URL or as inline bytes
// (base64 in JSON), never both.
type ScanReceiptRequest struct {
	BillID      string `json:"billId"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageData   []byte `json:"imageData,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type GetReviewRequest struct {
	BillID string `json:"billId"`
}

// ConfirmItemRequest confirms the current candidate with the user's edits.
type ConfirmItemRequest struct {
	BillID   string   `json:"billId"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	SharedBy SharedBy `json:"sharedBy"`
}

type ConfirmItemResponse struct {
	Item   Item   `json:"item"`
	Review Review `json:"review"`
}

type SkipItemRequest struct {
	BillID string `json:"billId"`
}

type CloseReviewRequest struct {
	BillID string `json:"billId"`
}

// User is the public view of an account.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	DisplayName      string `json:"displayName"`
	ScanningApproved bool   `json:"scanningApproved"`
	CreatedAt        int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token. ExpiresAt is a Unix timestamp.
type AuthResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}
