package validation

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(DefaultSchemas())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func procurementInput() map[string]any {
	return map[string]any{
		"produceName":  "Maize",
		"produceType":  "Grain",
		"tonnage":      float64(150),
		"cost":         float64(20000),
		"dealerName":   "Acme",
		"branch":       "Maganjo",
		"contact":      "0701234567",
		"sellingPrice": float64(25000),
		"date":         "2026-01-01",
		"time":         "09:00",
	}
}

func cashSaleInput() map[string]any {
	return map[string]any{
		"produceName":    "Beans",
		"tonnage":        float64(5),
		"amountPaid":     float64(50000),
		"buyerName":      "Jane Doe",
		"salesAgentName": "Sam",
		"date":           "2026-02-10",
		"time":           "14:30",
	}
}

func creditSaleInput() map[string]any {
	return map[string]any{
		"buyerName":      "Kato Traders",
		"nin":            "12345678901234",
		"location":       "Kampala",
		"contact":        "+256701234567",
		"amountDue":      float64(120000),
		"salesAgentName": "Sam",
		"dueDate":        "2026-03-01",
		"produceName":    "Maize",
		"produceType":    "Grain",
		"tonnage":        float64(10),
		"dispatchDate":   "2026-02-15T08:00:00Z",
	}
}

func userInput() map[string]any {
	return map[string]any{
		"username": "grace",
		"email":    "grace@kgl.example",
		"password": "secret1",
		"role":     "Manager",
	}
}

func expectViolation(t *testing.T, err error, field, message string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != field || ve.Message != message {
		t.Fatalf("expected %s: %q, got %s: %q", field, message, ve.Field, ve.Message)
	}
}

func TestValidate_ProcurementTonnageBelowMinimum(t *testing.T) {
	v := newTestValidator(t)
	in := procurementInput()
	in["tonnage"] = float64(50)

	_, err := v.Validate(Procurement, in)
	expectViolation(t, err, "tonnage", "Tonnage must be minimum 100kg")
}

func TestValidate_ProcurementValid(t *testing.T) {
	v := newTestValidator(t)

	rec, err := v.Validate(Procurement, procurementInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Float("tonnage") != 150 || rec.String("branch") != "Maganjo" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if !rec.Time("date").Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", rec.Time("date"))
	}
}

func TestValidate_ProcurementRules(t *testing.T) {
	v := newTestValidator(t)

	cases := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{"missing name", "produceName", nil, "Produce name is required"},
		{"empty name", "produceName", "", "Produce name is required"},
		{"name symbols", "produceName", "Maize!", "Produce name must contain only alphanumeric characters"},
		{"name blank", "produceName", "   ", "Produce name must contain only alphanumeric characters"},
		{"name not string", "produceName", float64(3), "Produce name must be a string"},
		{"type digits", "produceType", "Grain2", "Produce type must contain only alphabetic characters"},
		{"type blank", "produceType", "   ", "Produce type must contain only alphabetic characters"},
		{"type short", "produceType", "G", "Produce type must be at least 2 characters"},
		{"bad date", "date", "yesterday", "Date must be a valid date"},
		{"bad time", "time", "24:00", "Time must be in HH:MM format"},
		{"time no colon", "time", "0900", "Time must be in HH:MM format"},
		{"tonnage text", "tonnage", "lots", "Tonnage must be a number"},
		{"cost low", "cost", float64(9999), "Cost must be minimum 10000 UgX"},
		{"dealer short", "dealerName", "A", "Dealer name must be at least 2 characters"},
		{"dealer blank", "dealerName", "  ", "Dealer name must contain only alphanumeric characters"},
		{"dealer symbols", "dealerName", "Acme & Co", "Dealer name must contain only alphanumeric characters"},
		{"branch", "branch", "Kampala", "Branch must be either Maganjo or Matugga"},
		{"contact short", "contact", "070123456", "Contact must be a valid Ugandan phone number"},
		{"contact prefix", "contact", "+254701234567", "Contact must be a valid Ugandan phone number"},
		{"selling price", "sellingPrice", float64(100), "Selling price must be minimum 10000 UgX"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := procurementInput()
			if tc.value == nil {
				delete(in, tc.field)
			} else {
				in[tc.field] = tc.value
			}
			_, err := v.Validate(Procurement, in)
			expectViolation(t, err, tc.field, tc.message)
		})
	}
}

func TestValidate_FirstViolationWins(t *testing.T) {
	v := newTestValidator(t)
	in := procurementInput()
	in["tonnage"] = float64(1)
	in["cost"] = float64(1)
	in["produceType"] = "X"

	_, err := v.Validate(Procurement, in)
	expectViolation(t, err, "produceType", "Produce type must be at least 2 characters")

	in["produceType"] = "Grain"
	_, err = v.Validate(Procurement, in)
	expectViolation(t, err, "tonnage", "Tonnage must be minimum 100kg")
}

func TestValidate_NameAllowsSpaces(t *testing.T) {
	v := newTestValidator(t)
	in := procurementInput()
	in["produceName"] = "Yellow Maize"
	in["dealerName"] = "Acme Farms 2"

	if _, err := v.Validate(Procurement, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NumericStringsAreNormalised(t *testing.T) {
	v := newTestValidator(t)
	in := procurementInput()
	in["tonnage"] = "150"

	rec, err := v.Validate(Procurement, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Float("tonnage") != 150 {
		t.Fatalf("expected tonnage 150, got %v", rec["tonnage"])
	}
}

func TestValidate_UnknownFieldRejected(t *testing.T) {
	v := newTestValidator(t)
	in := procurementInput()
	in["zeta"] = 1
	in["recordedBy"] = "someone"

	_, err := v.Validate(Procurement, in)
	expectViolation(t, err, "recordedBy", `"recordedBy" is not allowed`)
}

func TestValidate_Idempotent(t *testing.T) {
	v := newTestValidator(t)

	for kind, in := range map[Kind]map[string]any{
		Procurement: procurementInput(),
		CashSale:    cashSaleInput(),
		CreditSale:  creditSaleInput(),
		User:        userInput(),
	} {
		first, err := v.Validate(kind, in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		second, err := v.Validate(kind, first)
		if err != nil {
			t.Fatalf("%s: revalidation failed: %v", kind, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: outcome changed: %v vs %v", kind, first, second)
		}
	}

	bad := procurementInput()
	bad["tonnage"] = float64(50)
	_, err1 := v.Validate(Procurement, bad)
	_, err2 := v.Validate(Procurement, bad)
	if err1 == nil || err2 == nil || err1.Error() != err2.Error() {
		t.Fatalf("expected identical failures, got %v and %v", err1, err2)
	}
}

func TestValidate_Sales(t *testing.T) {
	v := newTestValidator(t)

	if _, err := v.Validate(CashSale, cashSaleInput()); err != nil {
		t.Fatalf("cash sale: %v", err)
	}
	if _, err := v.Validate(CreditSale, creditSaleInput()); err != nil {
		t.Fatalf("credit sale: %v", err)
	}

	cash := cashSaleInput()
	cash["tonnage"] = float64(0.5)
	_, err := v.Validate(CashSale, cash)
	expectViolation(t, err, "tonnage", "Tonnage must be minimum 1kg")

	credit := creditSaleInput()
	credit["nin"] = "1234567890123"
	_, err = v.Validate(CreditSale, credit)
	expectViolation(t, err, "nin", "NIN must be 14 digits")

	credit = creditSaleInput()
	credit["nin"] = "1234567890123A"
	_, err = v.Validate(CreditSale, credit)
	expectViolation(t, err, "nin", "NIN must be 14 digits")
}

func TestValidate_User(t *testing.T) {
	v := newTestValidator(t)

	if _, err := v.Validate(User, userInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := userInput()
	in["password"] = "12345"
	_, err := v.Validate(User, in)
	expectViolation(t, err, "password", "Password must be at least 6 characters")

	in = userInput()
	in["role"] = "Admin"
	_, err = v.Validate(User, in)
	expectViolation(t, err, "role", "Role must be either Manager or Sales Agent")

	in = userInput()
	in["role"] = "Sales Agent"
	in["contact"] = "0701234567"
	if _, err := v.Validate(User, in); err != nil {
		t.Fatalf("sales agent with contact: %v", err)
	}

	in = userInput()
	in["email"] = "not-an-email"
	_, err = v.Validate(User, in)
	expectViolation(t, err, "email", "Email must be a valid email")

	in = userInput()
	in["contact"] = "12"
	_, err = v.Validate(User, in)
	expectViolation(t, err, "contact", "Contact must be a valid Ugandan phone number")
}

func TestValidate_UserUpdateIsPartial(t *testing.T) {
	v := newTestValidator(t)

	rec, err := v.Validate(UserUpdate, map[string]any{"email": "new@kgl.example"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Has("username") || rec.String("email") != "new@kgl.example" {
		t.Fatalf("unexpected record: %v", rec)
	}

	_, err = v.Validate(UserUpdate, map[string]any{"password": "123"})
	expectViolation(t, err, "password", "Password must be at least 6 characters")
}

func TestValidate_Login(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(Login, map[string]any{"password": "x"})
	expectViolation(t, err, "username", "Username is required")

	_, err = v.Validate(Login, map[string]any{"username": "grace"})
	expectViolation(t, err, "password", "Password is required")
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := newTestValidator(t)
	if _, err := v.Validate(Kind("nope"), map[string]any{}); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}

func TestNew_RejectsBadTag(t *testing.T) {
	_, err := New([]Schema{{Kind: "broken", Fields: []Field{
		{Name: "x", Type: String, Rules: []Rule{{Tag: "no_such_tag", Message: "x"}}},
	}}})
	if err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}

func TestValidate_DateLayouts(t *testing.T) {
	v := newTestValidator(t)

	cases := map[string]time.Time{
		"2026-01-01":           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		"2026-01-01T09:00:00Z": time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		"2026-01-01T09:00:00":  time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		"2026-01-01T09:00":     time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		in := procurementInput()
		in["date"] = raw
		rec, err := v.Validate(Procurement, in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if !rec.Time("date").Equal(want) {
			t.Fatalf("%s: expected %v, got %v", raw, want, rec.Time("date"))
		}
	}
}

func TestCheckFields(t *testing.T) {
	v := newTestValidator(t)

	// Any key declared by either sale schema passes.
	in := map[string]any{"amountPaid": 1, "nin": "x", "produceName": "Beans"}
	if err := v.CheckFields(in, CashSale, CreditSale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in["zeta"] = 1
	in["bogus"] = 2
	expectViolation(t, v.CheckFields(in, CashSale, CreditSale), "bogus", `"bogus" is not allowed`)

	if err := v.CheckFields(in, Kind("nope")); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}
