package validator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type sample struct {
	Type     string   `json:"type" binding:"required,transaction_type"`
	Amount   float64  `json:"amount" binding:"required,gt=0"`
	Category string   `json:"category" binding:"required,min=1,max=100"`
	Ignored  string   `json:"-"`
	Limit    *int     `form:"limit" binding:"omitempty,min=1"`
	Extra    []string `json:"extra,omitempty"`
}

func TestTransactionTypeValidator(t *testing.T) {
	Register()

	valid := sample{Type: "income", Amount: 1, Category: "Food"}
	if err := binding.Validator.ValidateStruct(&valid); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	for _, typ := range []string{"transfer", "INCOME", ""} {
		invalid := sample{Type: typ, Amount: 1, Category: "Food"}
		if err := binding.Validator.ValidateStruct(&invalid); err == nil {
			t.Errorf("expected %q to be rejected", typ)
		}
	}
}

func TestFieldErrors_UsesJSONNames(t *testing.T) {
	Register()

	zero := 0
	err := binding.Validator.ValidateStruct(&sample{Type: "bogus", Limit: &zero})
	if err == nil {
		t.Fatal("expected validation error")
	}

	details := FieldErrors(err)
	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}

	for _, want := range []string{"type", "amount", "category", "limit"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("expected detail for field %q, got %+v", want, details)
		}
	}
	if msg := fields["type"]; msg != "must be one of: income, expense" {
		t.Errorf("unexpected type message %q", msg)
	}
}

func TestFieldErrors_TypeMismatch(t *testing.T) {
	var dst sample
	err := json.Unmarshal([]byte(`{"amount":"lots"}`), &dst)

	details := FieldErrors(err)
	if len(details) != 1 || details[0].Field != "amount" {
		t.Fatalf("expected single amount detail, got %+v", details)
	}
}

func TestFieldErrors_Other(t *testing.T) {
	details := FieldErrors(errors.New("unexpected EOF"))
	if len(details) != 1 || details[0].Field != "body" {
		t.Fatalf("expected body detail, got %+v", details)
	}

	var verrs validator.ValidationErrors
	if errors.As(errors.New("x"), &verrs) {
		t.Fatal("plain error must not match ValidationErrors")
	}
}
