package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/anirbansen/credit-insight/internal/models"
)

const defaultCurrency = "INR"

var dateLayouts = []string{"02-01-2006", "2006-01-02", "02/01/2006"}

// ParseReport decodes a bureau INDV-REPORT document into the engine's input
// contract. It extracts the report date, the score block and every loan
// response; it does not compute anything.
func ParseReport(raw []byte) (*models.BureauReport, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	report := doc.FindElement("//INDV-REPORT")
	if report == nil {
		return nil, fmt.Errorf("no INDV-REPORT element found")
	}

	out := &models.BureauReport{Bureau: "CRIF"}

	if issued := elementText(report, "./HEADER/DATE-OF-ISSUE"); issued != "" {
		date, err := parseDate(issued)
		if err != nil {
			return nil, fmt.Errorf("bad DATE-OF-ISSUE: %w", err)
		}
		out.ReportDate = date
	}

	if score := report.FindElement("./SCORES/SCORE"); score != nil {
		if bureau := elementText(score, "./SCORE-TYPE"); bureau != "" {
			out.Bureau = bureau
		}
		if value := elementText(score, "./SCORE-VALUE"); value != "" {
			scoreValue, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("bad SCORE-VALUE %q: %w", value, err)
			}
			out.Score = &models.ScoreSnapshot{
				Bureau:   out.Bureau,
				PulledAt: out.ReportDate,
				Score:    scoreValue,
			}
		}
	}

	for i, response := range report.FindElements("./RESPONSES/RESPONSE") {
		loan := response.FindElement("./LOAN-DETAILS")
		if loan == nil {
			continue
		}
		out.Tradelines = append(out.Tradelines, parseLoan(loan, i))
	}

	return out, nil
}

func parseLoan(loan *etree.Element, index int) models.Tradeline {
	tl := models.Tradeline{
		AccountType:   elementText(loan, "./ACCT-TYPE"),
		AccountStatus: elementText(loan, "./ACCOUNT-STATUS"),
		OpenedDate:    elementText(loan, "./DISBURSED-DATE"),
		ClosedDate:    elementText(loan, "./CLOSED-DATE"),
		Currency:      defaultCurrency,
	}
	if currency := elementText(loan, "./CURRENCY-CD"); currency != "" {
		tl.Currency = currency
	}

	tl.ID = elementText(loan, "./ACCT-NUMBER")
	if tl.ID == "" {
		tl.ID = fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(tl.AccountType, " ", "-")), index+1)
	}

	tl.SanctionedAmount = parseAmount(elementText(loan, "./SANCTIONED-AMT"))
	tl.DisbursedAmount = parseAmount(elementText(loan, "./DISBURSED-AMT"))
	if balance := parseAmount(elementText(loan, "./CURRENT-BAL")); balance != nil {
		tl.CurrentBalance = *balance
	}

	tl.History = parsePaymentHistory(elementText(loan, "./COMBINED-PAYMENT-HISTORY"))
	return tl
}

// parsePaymentHistory splits the combined history string
// ("date,status|date,status|...") into raw period records. Malformed
// entries are skipped; the decoder deals with token semantics.
func parsePaymentHistory(history string) []models.RawPeriod {
	if history == "" {
		return nil
	}
	var periods []models.RawPeriod
	for _, entry := range strings.Split(history, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		date, status, found := strings.Cut(entry, ",")
		if !found {
			continue
		}
		periods = append(periods, models.RawPeriod{
			Period: strings.TrimSpace(date),
			Token:  strings.TrimSpace(status),
		})
	}
	return periods
}

// parseAmount cleans a bureau amount string (currency symbols, commas) and
// parses it. A missing or unparseable amount is nil, never 0: the engine
// treats unknown amounts differently from zero ones.
func parseAmount(s string) *float64 {
	cleaned := strings.TrimSpace(strings.NewReplacer(",", "", "₹", "", "INR", "").Replace(s))
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func elementText(parent *etree.Element, path string) string {
	element := parent.FindElement(path)
	if element == nil {
		return ""
	}
	return strings.TrimSpace(element.Text())
}
