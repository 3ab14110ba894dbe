package dispatch

import "fmt"

// Kind classifies where a failure originated. It is logged, never returned to callers.
type Kind string

// Failure kinds.
const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindUpstream   Kind = "upstream"
	KindUnexpected Kind = "unexpected"
)

// Failure is a classified tool failure.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	if f == nil || f.Err == nil {
		return string(f.kind()) + " failure"
	}
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

func (f *Failure) kind() Kind {
	if f == nil || f.Kind == "" {
		return KindUnexpected
	}
	return f.Kind
}

// Outcome is the result of a tool handler: exactly one of Data or Failure is meaningful.
type Outcome struct {
	Data    any
	Failure *Failure
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

func succeed(data any) Outcome {
	return Outcome{Data: data}
}

func fail(kind Kind, err error) Outcome {
	if err == nil {
		err = fmt.Errorf("%s failure", kind)
	}
	return Outcome{Failure: &Failure{Kind: kind, Err: err}}
}
