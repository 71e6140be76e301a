// Package tools implements the MCP tool handlers for the Socramine server.
//
// Each tool is a struct that receives its dependencies at construction and
// exposes Definition/Handle for registration. Handlers validate and translate
// parameters before any network call; domain failures (bad input, unknown
// names, backend errors) come back as tool errors so the calling agent sees
// them, while internal failures propagate as Go errors.
package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// noData is the reply for queries that matched nothing. An empty result is
// an answer, not an error.
const noData = "No data."

// parseDate parses the strict YYYY-MM-DD format every date parameter uses.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a valid date, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// jsonResult marshals v as an indented JSON tool reply.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// hoursResult renders a total-hours reply as a bare number.
func hoursResult(hours float64) *mcp.CallToolResult {
	return mcp.NewToolResultText(strconv.FormatFloat(hours, 'f', -1, 64))
}

// intArg extracts an integer argument from a tool request.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// floatArg extracts a numeric argument from a tool request.
func floatArg(req mcp.CallToolRequest, key string, defaultVal float64) float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return v
}
