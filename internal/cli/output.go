package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/TimurManjosov/bfhl/internal/client"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// resultView is the printable form of a /bfhl envelope.
type resultView struct {
	Operation     string `json:"operation" yaml:"operation"`
	IsSuccess     bool   `json:"is_success" yaml:"is_success"`
	OfficialEmail string `json:"official_email" yaml:"official_email"`
	Data          any    `json:"data,omitempty" yaml:"data,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PrintResult outputs a /bfhl result in the specified format
func PrintResult(w io.Writer, operation string, result *client.Result, format OutputFormat) error {
	data, err := decodeData(result.Data)
	if err != nil {
		return err
	}
	view := resultView{
		Operation:     operation,
		IsSuccess:     result.IsSuccess,
		OfficialEmail: result.OfficialEmail,
		Data:          data,
		Error:         result.Error,
	}

	switch format {
	case FormatJSON:
		return printJSON(w, view)
	case FormatYAML:
		return printYAML(w, view)
	case FormatTable:
		value := result.Error
		if result.IsSuccess {
			value = cell(data, result.Data)
		}
		table := tablewriter.NewWriter(w)
		table.Header("Operation", "Success", "Result")
		table.Append(operation, strconv.FormatBool(result.IsSuccess), value)
		return table.Render()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintInfo outputs the service information document
func PrintInfo(w io.Writer, info *client.Info, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(w, info)
	case FormatYAML:
		return printYAML(w, info)
	case FormatTable:
		routes := make([]string, 0, len(info.Endpoints))
		for route := range info.Endpoints {
			routes = append(routes, route)
		}
		sort.Strings(routes)

		table := tablewriter.NewWriter(w)
		table.Header("Endpoint", "Description")
		for _, route := range routes {
			table.Append(route, info.Endpoints[route])
		}
		return table.Render()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintHealth outputs the health check result
func PrintHealth(w io.Writer, health *client.Health, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(w, health)
	case FormatYAML:
		return printYAML(w, health)
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.Header("Healthy", "Official Email")
		table.Append(strconv.FormatBool(health.IsSuccess), health.OfficialEmail)
		return table.Render()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

// decodeData turns raw envelope data into plain values, keeping integers exact.
func decodeData(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalize(t[k])
		}
		return t
	default:
		return v
	}
}

func cell(data any, raw json.RawMessage) string {
	if s, ok := data.(string); ok {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
