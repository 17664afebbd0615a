package session

import (
	"strconv"
	"strings"
)

type Role string

const (
	RoleCustomer    Role = "CUSTOMER"
	RoleDistributor Role = "DISTRIBUTOR"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleDistributor:
		return r, true
	}
	return "", false
}

// Identity is who is logged in. The zero value is the anonymous identity.
type Identity struct {
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	LoggedIn bool   `json:"loggedIn"`
}

// Destination is the screen a user lands on after login.
type Destination string

const (
	CustomerDashboard    Destination = "/customerDashboard"
	DistributorDashboard Destination = "/distributorDashboard"
)

// RoleRoute maps a role to its dashboard. Unknown roles return ok=false and
// the caller stays where it is.
func RoleRoute(role Role) (Destination, bool) {
	switch role {
	case RoleCustomer:
		return CustomerDashboard, true
	case RoleDistributor:
		return DistributorDashboard, true
	}
	return "", false
}

// Stored keys. These four flat entries are the whole persisted session.
const (
	KeyLoggedIn = "isLoggedIn"
	KeyName     = "name"
	KeyUserID   = "userId"
	KeyRole     = "userRole"
)

var Keys = []string{KeyLoggedIn, KeyName, KeyUserID, KeyRole}

func (id Identity) entries() map[string]string {
	return map[string]string{
		KeyLoggedIn: strconv.FormatBool(id.LoggedIn),
		KeyName:     id.Name,
		KeyUserID:   strconv.FormatInt(id.UserID, 10),
		KeyRole:     string(id.Role),
	}
}

// fromEntries rebuilds an identity; anything inconsistent reads as anonymous.
func fromEntries(m map[string]string) Identity {
	if m[KeyLoggedIn] != "true" {
		return Identity{}
	}
	uid, err := strconv.ParseInt(m[KeyUserID], 10, 64)
	if err != nil || uid == 0 {
		return Identity{}
	}
	return Identity{
		UserID:   uid,
		Name:     m[KeyName],
		Role:     Role(m[KeyRole]),
		LoggedIn: true,
	}
}
