package domain

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxDeposit        TransactionType = "deposit"
	TxWithdrawal     TransactionType = "withdrawal"
	TxPayment        TransactionType = "payment"
	TxConsultancyFee TransactionType = "consultancy_fee"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxPayment, TxConsultancyFee:
		return true
	}
	return false
}

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TxCompleted            TransactionStatus = "completed"
	TxPending              TransactionStatus = "pending"
	TxFailed               TransactionStatus = "failed"
	TxDisputed             TransactionStatus = "disputed"
	TxAwaitingAuthorisation TransactionStatus = "awaiting_authorisation"
	TxConnected            TransactionStatus = "connected"
	TxPaid                 TransactionStatus = "paid"
)

// Transaction is an append-only ledger entry on a user. A consultation
// payment produces two entries — a debit on the patient and a credit
// on the doctor — written separately but sharing one ID, correlated
// through SenderID/RecipientID. There is no atomicity guarantee
// between the pair.
type Transaction struct {
	ID          string            `json:"id" bson:"id"`
	Type        TransactionType   `json:"type" bson:"type"`
	Amount      float64           `json:"amount" bson:"amount"`
	Status      TransactionStatus `json:"status" bson:"status"`
	Date        string            `json:"date" bson:"date"`
	Method      string            `json:"method" bson:"method"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	RecipientID string            `json:"recipient_id,omitempty" bson:"recipient_id,omitempty"`
	SenderID    string            `json:"sender_id,omitempty" bson:"sender_id,omitempty"`
}
