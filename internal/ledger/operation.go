package ledger

// OperationID is an operation's position in the global history. Positions are
// assigned sequentially starting at 0 and are never reused.
type OperationID = int

type OperationKind string

const (
	OpCreateAccount OperationKind = "create_account"
	OpIncrease      OperationKind = "increase"
	OpDecrease      OperationKind = "decrease"
	OpTransfer      OperationKind = "transfer"
)

// Operation is one successfully applied mutation. Rejected commands never
// produce an Operation. The same encoding is used for history responses,
// restore requests and published events.
type Operation struct {
	Kind    OperationKind `json:"kind"`
	Account string        `json:"account,omitempty"`
	From    string        `json:"from,omitempty"`
	To      string        `json:"to,omitempty"`
	Amount  uint64        `json:"amount,omitempty"`
}

func CreateAccount(account string) Operation {
	return Operation{Kind: OpCreateAccount, Account: account}
}

func Increase(account string, amount uint64) Operation {
	return Operation{Kind: OpIncrease, Account: account, Amount: amount}
}

func Decrease(account string, amount uint64) Operation {
	return Operation{Kind: OpDecrease, Account: account, Amount: amount}
}

func Transfer(from, to string, amount uint64) Operation {
	return Operation{Kind: OpTransfer, From: from, To: to, Amount: amount}
}
