package validation

// DefaultSchemas returns the rule tables for every record kind. Field and rule
// order is significant: it decides which message a multi-error input gets.
func DefaultSchemas() []Schema {
	return []Schema{
		{Kind: Procurement, Fields: []Field{
			text("produceName", "Produce name",
				rule("alnumspace", "Produce name must contain only alphanumeric characters")),
			text("produceType", "Produce type",
				rule("alphaspace", "Produce type must contain only alphabetic characters"),
				rule("min=2", "Produce type must be at least 2 characters")),
			date("date", "Date"),
			text("time", "Time",
				rule("hhmm", "Time must be in HH:MM format")),
			number("tonnage", "Tonnage",
				rule("min=100", "Tonnage must be minimum 100kg")),
			number("cost", "Cost",
				rule("min=10000", "Cost must be minimum 10000 UgX")),
			text("dealerName", "Dealer name",
				rule("alnumspace", "Dealer name must contain only alphanumeric characters"),
				rule("min=2", "Dealer name must be at least 2 characters")),
			text("branch", "Branch",
				rule("oneof=Maganjo Matugga", "Branch must be either Maganjo or Matugga")),
			phone("contact"),
			number("sellingPrice", "Selling price",
				rule("min=10000", "Selling price must be minimum 10000 UgX")),
		}},

		{Kind: CashSale, Fields: []Field{
			text("produceName", "Produce name",
				rule("alnumspace", "Produce name must contain only alphanumeric characters")),
			number("tonnage", "Tonnage",
				rule("min=1", "Tonnage must be minimum 1kg")),
			number("amountPaid", "Amount paid",
				rule("min=10000", "Amount paid must be minimum 10000 UgX")),
			name("buyerName", "Buyer name"),
			name("salesAgentName", "Sales agent name"),
			date("date", "Date"),
			text("time", "Time",
				rule("hhmm", "Time must be in HH:MM format")),
		}},

		{Kind: CreditSale, Fields: []Field{
			name("buyerName", "Buyer name"),
			text("nin", "NIN",
				rule("nin", "NIN must be 14 digits")),
			name("location", "Location"),
			phone("contact"),
			number("amountDue", "Amount due",
				rule("min=10000", "Amount due must be minimum 10000 UgX")),
			name("salesAgentName", "Sales agent name"),
			date("dueDate", "Due date"),
			text("produceName", "Produce name",
				rule("alnumspace", "Produce name must contain only alphanumeric characters")),
			text("produceType", "Produce type",
				rule("alphaspace", "Produce type must contain only alphabetic characters")),
			number("tonnage", "Tonnage",
				rule("min=1", "Tonnage must be minimum 1kg")),
			date("dispatchDate", "Dispatch date"),
		}},

		{Kind: User, Fields: userFields()},

		{Kind: UserUpdate, Fields: allOptional(userFields())},

		{Kind: Login, Fields: []Field{
			text("username", "Username"),
			text("password", "Password"),
		}},
	}
}

func userFields() []Field {
	return []Field{
		text("username", "Username",
			rule("alphanum", "Username must contain only alphanumeric characters"),
			rule("min=2", "Username must be at least 2 characters")),
		text("email", "Email",
			rule("email", "Email must be a valid email")),
		text("password", "Password",
			rule("min=6", "Password must be at least 6 characters"),
			rule("maxbytes=72", "Password must be at most 72 bytes")),
		text("role", "Role",
			rule("role", "Role must be either Manager or Sales Agent")),
		optional(phone("contact")),
	}
}

func rule(tag, message string) Rule {
	return Rule{Tag: tag, Message: message}
}

func text(field, label string, rules ...Rule) Field {
	return Field{
		Name:     field,
		Type:     String,
		Required: label + " is required",
		Invalid:  label + " must be a string",
		Rules:    rules,
	}
}

// name is a free-text person or place name.
func name(field, label string) Field {
	return text(field, label,
		rule("alnumspace", label+" must contain only alphanumeric characters"),
		rule("min=2", label+" must be at least 2 characters"))
}

func phone(field string) Field {
	return text(field, "Contact",
		rule("ugphone", "Contact must be a valid Ugandan phone number"))
}

func number(field, label string, rules ...Rule) Field {
	return Field{
		Name:     field,
		Type:     Number,
		Required: label + " is required",
		Invalid:  label + " must be a number",
		Rules:    rules,
	}
}

func date(field, label string) Field {
	return Field{
		Name:     field,
		Type:     Date,
		Required: label + " is required",
		Invalid:  label + " must be a valid date",
	}
}

func optional(f Field) Field {
	f.Optional = true
	return f
}

func allOptional(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = optional(f)
	}
	return out
}
