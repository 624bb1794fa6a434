package httpio

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	Name      string `json:"name" doc:"Account name"`
	Balance   string `json:"balance" doc:"Decimal balance"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// Goal is the API response model for a savings goal.
type Goal struct {
	ID              string `json:"id" doc:"Goal UUID"`
	AccountID       string `json:"accountID" doc:"Funding account UUID"`
	Name            string `json:"name" doc:"Goal name"`
	TargetAmount    string `json:"targetAmount" doc:"Decimal target"`
	CurrentAmount   string `json:"currentAmount" doc:"Decimal amount saved so far"`
	ProgressPercent string `json:"progressPercent" doc:"Saved share of the target in percent, capped at 100"`
	Deadline        string `json:"deadline,omitempty" doc:"Deadline date, absent when none is set"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	GoalID          string `json:"goalID,omitempty" doc:"Linked goal UUID"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Category UUID"`
	BudgetID        string `json:"budgetID,omitempty" doc:"Budget UUID"`
	Type            string `json:"type" doc:"income, expense, goal_deposit or goal_withdrawal"`
	Amount          string `json:"amount" doc:"Decimal amount, always positive"`
	Description     string `json:"description" doc:"Free text"`
	TransactionDate string `json:"transactionDate" doc:"Transaction date"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

// Movement is the response of deposit and withdrawal endpoints.
type Movement struct {
	Account     Account     `json:"account"`
	Goal        *Goal       `json:"goal,omitempty"`
	Transaction Transaction `json:"transaction"`
}

type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	Type      string `json:"type" doc:"income or expense"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

type Budget struct {
	ID          string `json:"id" doc:"Budget UUID"`
	Name        string `json:"name" doc:"Budget name"`
	PeriodStart string `json:"periodStart" doc:"First day of the budget"`
	PeriodEnd   string `json:"periodEnd" doc:"Last day of the budget"`
	TotalAmount string `json:"totalAmount" doc:"Decimal budget total"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

func FromAccount(a service.Account) Account {
	return Account{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   a.Balance.StringFixed(2),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func FromGoal(g service.Goal) Goal {
	out := Goal{
		ID:              g.ID.String(),
		AccountID:       g.AccountID.String(),
		Name:            g.Name,
		TargetAmount:    g.TargetAmount.StringFixed(2),
		CurrentAmount:   g.CurrentAmount.StringFixed(2),
		ProgressPercent: g.ProgressPercent.StringFixed(2),
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
	}
	if !g.Deadline.IsZero() {
		out.Deadline = g.Deadline.Format(dateLayout)
	}
	return out
}

func FromTransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		AccountID:       tx.AccountID.String(),
		GoalID:          nullString(tx.GoalID),
		CategoryID:      nullString(tx.CategoryID),
		BudgetID:        nullString(tx.BudgetID),
		Type:            string(tx.Type),
		Amount:          tx.Amount.StringFixed(2),
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.Format(dateLayout),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
}

func FromTransactions(txs []service.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = FromTransaction(tx)
	}
	return out
}

func FromMovement(m *service.Movement) Movement {
	out := Movement{
		Account:     FromAccount(m.Account),
		Transaction: FromTransaction(m.Transaction),
	}
	if m.Goal != nil {
		g := FromGoal(*m.Goal)
		out.Goal = &g
	}
	return out
}

func FromCategory(c service.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func FromBudget(b service.Budget) Budget {
	return Budget{
		ID:          b.ID.String(),
		Name:        b.Name,
		PeriodStart: b.PeriodStart.Format(dateLayout),
		PeriodEnd:   b.PeriodEnd.Format(dateLayout),
		TotalAmount: b.TotalAmount.StringFixed(2),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

func nullString(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}
