package models

// Suggestion methods, strongest first.
const (
	MethodDirectSupplierMatch = "direct_supplier_match"
	MethodKeywordMatch        = "keyword_match"
	MethodAISuggestion        = "ai_suggestion"
)

// CategorySuggestion is the category-suggestion collaborator response.
// A zero-confidence suggestion with no category means "no suggestion".
type CategorySuggestion struct {
	CategoryID   *int64  `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	ExpenseType  string  `json:"expenseType,omitempty"`
	Confidence   float64 `json:"confidence"`
	Method       string  `json:"method,omitempty"`
}

// SuggestionRequest is the category-suggestion collaborator request
type SuggestionRequest struct {
	SupplierName string `json:"supplierName"`
	Description  string `json:"description"`
	AccountType  string `json:"accountType"`
	ClientID     int64  `json:"clientId"`
}
