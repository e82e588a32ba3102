package mailer

import (
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/valyala/fasttemplate"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// Vars builds the placeholder values for one contact. company may be nil.
func Vars(contact entity.Contact, company *entity.Company, sender Sender) map[string]string {
	vars := map[string]string{
		"first_name":       orDefault(contact.FirstName, "there"),
		"last_name":        contact.LastName,
		"full_name":        contact.FullName(),
		"title":            orDefault(deref(contact.Title), "professional"),
		"company_name":     "",
		"company_industry": "biotechnology",
		"funding_stage":    "",
		"total_funding":    "",
		"sender_name":      sender.Name,
		"sender_company":   sender.Company,
		"sender_email":     sender.Email,
	}
	if company != nil {
		vars["company_name"] = company.Name
		vars["company_industry"] = orDefault(deref(company.Industry), "biotechnology")
		vars["funding_stage"] = deref(company.FundingStage)
		if company.TotalFunding != nil && *company.TotalFunding > 0 {
			vars["total_funding"] = "$" + humanize.Comma(*company.TotalFunding)
		}
	}
	return vars
}

// Render substitutes {{name}} placeholders. Whitespace inside the braces is
// ignored and unknown placeholders are left untouched.
func Render(tpl string, vars map[string]string) string {
	if !strings.Contains(tpl, "{{") {
		return tpl
	}
	return fasttemplate.ExecuteFuncString(tpl, "{{", "}}", func(w io.Writer, tag string) (int, error) {
		if v, ok := vars[strings.TrimSpace(tag)]; ok {
			return io.WriteString(w, v)
		}
		return io.WriteString(w, "{{"+tag+"}}")
	})
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
