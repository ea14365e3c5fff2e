package types

// ApiClient identifies the system calling the bill payment API.
type ApiClient struct {
	ID     string   `json:"id" validate:"required"`
	Name   string   `json:"name" validate:"required"`
	Scopes []string `json:"scopes" validate:"omitempty,dive,required"`
}

func (a ApiClient) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope || s == "*" {
			return true
		}
	}
	return false
}
