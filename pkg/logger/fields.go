package logger

import (
	"fmt"

	"github.com/rs/zerolog"
)

// messageKey allows object-first calls to carry the message inside the field
// map, e.g. Info(F{"msg": "hello", "a": 1}).
const messageKey = "msg"

// normalizeCall maps the supported calling shapes onto (message, fields):
//
//	Info("hello")
//	Info("hello", F{"a": 1})
//	Info(F{"a": 1})
//	Info(F{"a": 1}, "hello")
//	Info(F{"msg": "hello", "a": 1})
//	Info("hello", "a", 1, "b", 2)
//
// The returned map is always a fresh copy; caller-supplied maps are never
// mutated.
func normalizeCall(args []any) (string, F) {
	if len(args) == 0 {
		return "", nil
	}

	switch first := args[0].(type) {
	case string:
		rest := args[1:]
		if len(rest) == 0 {
			return first, nil
		}
		if m, ok := rest[0].(F); ok && len(rest) == 1 {
			return splitMessage(first, m)
		}
		return first, pairsToFields(rest)

	case F:
		msg := ""
		if len(args) > 1 {
			if s, ok := args[1].(string); ok {
				msg = s
			}
		}
		return splitMessage(msg, first)

	case error:
		return first.Error(), F{zerolog.ErrorFieldName: first}

	default:
		return fmt.Sprint(first), pairsToFields(args[1:])
	}
}

// splitMessage copies fields, extracting an embedded message key. An explicit
// message argument wins over the embedded one.
func splitMessage(msg string, fields F) (string, F) {
	out := make(F, len(fields))
	for k, v := range fields {
		if k == messageKey {
			if s, ok := v.(string); ok && msg == "" {
				msg = s
			}
			continue
		}
		out[k] = v
	}
	return msg, out
}

// pairsToFields converts slog-style key-value rest arguments into a field
// map. A dangling value without a key lands under "extra".
func pairsToFields(args []any) F {
	if len(args) == 0 {
		return nil
	}
	out := make(F, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			out["extra"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		out[key] = args[i+1]
	}
	return out
}

// normalizeErrors rewrites error-typed values so every record carries errors
// under zerolog's designated error field name with a stable string form.
// The "err" and "error" keys are folded into zerolog.ErrorFieldName; errors
// under other keys are stringified in place.
func normalizeErrors(fields F) F {
	for k, v := range fields {
		err, ok := v.(error)
		if !ok {
			continue
		}
		if k == "err" || k == "error" || k == zerolog.ErrorFieldName {
			delete(fields, k)
			fields[zerolog.ErrorFieldName] = err.Error()
			continue
		}
		fields[k] = err.Error()
	}
	return fields
}
