package domain

// FranchiseAdmin is a user listed as an administrator of a franchise.
type FranchiseAdmin struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Store is a physical location belonging to a franchise.
type Store struct {
	ID           int64    `json:"id"`
	FranchiseID  int64    `json:"franchiseId,omitempty"`
	Name         string   `json:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty"`
}

// Franchise groups stores under a set of administrators.
type Franchise struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
	Stores []Store          `json:"stores"`
}

// FranchisePage is one page of a franchise listing.
type FranchisePage struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}
