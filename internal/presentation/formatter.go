// Package presentation renders ledger results for the command line, either as
// the JSON envelope or as styled text.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/ledger/domain"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or text)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// Render writes one envelope.
func Render[T any](f *Formatter, env ledger.Envelope[T]) error {
	if f.format == FormatJSON {
		return f.encodeJSON(env)
	}
	if !env.Success {
		return f.writeLine(errorLine(env.Error))
	}
	return f.writeLine(textOf(*env.Value))
}

// RenderBatch writes the envelopes of an applied transaction file.
func (f *Formatter) RenderBatch(results []BatchResult) error {
	if f.format == FormatJSON {
		return f.encodeJSON(results)
	}
	for _, r := range results {
		status := SuccessStyle.Render("ok")
		detail := textOf(r.Value)
		if !r.Success {
			status = ErrorStyle.Render("rejected")
			detail = errorLine(r.Error)
		}
		if err := f.writeLine(fmt.Sprintf("%s %s %s: %s", r.ID, r.Op, status, detail)); err != nil {
			return err
		}
	}
	return nil
}

// BatchResult is the outcome of one transaction read from a file.
type BatchResult struct {
	ID      string                `json:"id"`
	Op      string                `json:"op"`
	Success bool                  `json:"success"`
	Value   any                   `json:"value,omitempty"`
	Error   *ledger.EnvelopeError `json:"error,omitempty"`
}

func (f *Formatter) encodeJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) writeLine(s string) error {
	_, err := fmt.Fprintln(f.writer, s)
	return err
}

func errorLine(e *ledger.EnvelopeError) string {
	if e == nil {
		return ErrorStyle.Render("error")
	}
	return fmt.Sprintf("%s %s %s", ErrorStyle.Render("error"), CodeStyle.Render(strconv.Itoa(e.Code)), e.Message)
}

func textOf(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case ledger.KeyView:
		return record(
			"id", value.ID.String(),
			"owner", value.Owner.String(),
			"public key", value.PublicKey,
			"expiration", heightText(&value.Expiration),
			"revoked", strconv.FormatBool(value.Revoked),
			"revoked at", heightText(value.RevokedAt),
		)
	case ledger.PairView:
		return record(
			"id", value.ID.String(),
			"generator", value.Generator.String(),
			"recipient", senderText(value.Recipient),
			"status", value.Status.String(),
			"generated at", heightText(&value.GeneratedAt),
			"distributed at", heightText(value.Timestamp),
		)
	case ledger.ListingView:
		return record(
			"id", value.ID.String(),
			"seller", value.Seller.String(),
			"amount", strconv.FormatUint(value.Amount, 10),
			"price", strconv.FormatUint(value.Price, 10),
			"expiration", heightText(&value.Expiration),
			"status", value.Status.String(),
			"buyer", senderText(value.Buyer),
			"sold at", heightText(value.SoldAt),
		)
	case ledger.ProposalView:
		voters := make([]string, len(value.Voters))
		for i, v := range value.Voters {
			voters[i] = v.String()
		}
		return record(
			"id", value.ID.String(),
			"proposer", value.Proposer.String(),
			"description", value.Description,
			"votes for", strconv.FormatUint(value.VotesFor, 10),
			"votes against", strconv.FormatUint(value.VotesAgainst, 10),
			"status", value.Status.String(),
			"outcome", value.Outcome.String(),
			"delay", strconv.FormatUint(value.ExecutionDelay, 10),
			"submitted at", heightText(&value.SubmittedAt),
			"executed at", heightText(value.ExecutedAt),
			"voters", strings.Join(voters, ", "),
		)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}

// record lays out label/value pairs one per line, skipping empty values.
func record(pairs ...string) string {
	lines := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			LabelStyle.Render(pairs[i]),
			ValueStyle.Render(pairs[i+1]),
		))
	}
	return strings.Join(lines, "\n")
}

func heightText(h *domain.Height) string {
	if h == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*h), 10)
}

func senderText(s *domain.Sender) string {
	if s == nil {
		return ""
	}
	return s.String()
}
