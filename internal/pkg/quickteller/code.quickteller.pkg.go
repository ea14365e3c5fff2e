package quickteller

// Quickteller response codes. Callers compare against these, never bare literals.
const (
	CodeSuccess                  = "90000"
	CodeBillerNotFound           = "70007"
	CodeDataNotFound             = "70013"
	CodeUnrecognizedCustomer     = "20021"
	CodeInvalidTransactionAmount = "20031"
	CodeXMLNodeMissing           = "70015"
	CodeXMLNodeEmpty             = "70016"
)

// zeroCount is the BillerList count reported when a search matched nothing.
const zeroCount = "0"

// codeRule layers a specific message, and optionally a fixed description, over
// the generic failure for one response code.
type codeRule struct {
	code        string
	message     string
	description *string
}

func onCode(code, message string) codeRule {
	return codeRule{code: code, message: message}
}

func onCodeDescribed(code, message, description string) codeRule {
	return codeRule{code: code, message: message, description: &description}
}

// classify returns nil for a successful status and an *Error otherwise. Rules
// are checked in order before falling through to the generic message.
func classify(status Status, generic string, rules ...codeRule) *Error {
	if status.ResponseCode == CodeSuccess {
		return nil
	}

	code := status.ResponseCode
	for _, rule := range rules {
		if rule.code != code {
			continue
		}
		description := status.ResponseDescription
		if rule.description != nil {
			description = rule.description
		}
		return NewError(rule.message, &code, description)
	}

	return NewError(generic, &code, status.ResponseDescription)
}
