// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/varzeapro/varzeapro/internal/app/system/auth"
)

// BaseVM carries the fields every page template needs.
type BaseVM struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	BackURL    string
}

// NewBaseVM builds the common view model from the current request.
func NewBaseVM(r *http.Request, title, backURL string) BaseVM {
	vm := BaseVM{Title: title, BackURL: backURL}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Role = u.Role
		vm.UserName = u.Name
	}
	return vm
}
