package enum

// AdviceEvent is the routing key of a bill payment advice outcome event.
type AdviceEvent string

const (
	ADVICE_SUCCEEDED AdviceEvent = "bill.advice.succeeded"
	ADVICE_FAILED    AdviceEvent = "bill.advice.failed"
)

func (e AdviceEvent) ToString() string {
	return string(e)
}

func (e AdviceEvent) IsValid() bool {
	switch e {
	case ADVICE_SUCCEEDED, ADVICE_FAILED:
		return true
	}
	return false
}

// IdempotencyStatus is the state of a stored idempotent request.
type IdempotencyStatus string

const (
	PROCESSING IdempotencyStatus = "PROCESSING"
	COMPLETE   IdempotencyStatus = "COMPLETE"
)
