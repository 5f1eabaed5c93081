package templating

import "strings"

// arrowExpr is a parsed "ident => body" mini-expression, the only
// expression form map/template accept. Anything outside the three
// recognized body shapes is rejected at parse time, never partially
// evaluated.
type arrowExpr struct {
	param string
	kind  string // "path" | "object" | "template"

	path string // kind == "path"

	fields     map[string]string // kind == "object": field name -> path
	fieldOrder []string

	template string // kind == "template": raw text with ${path} spans
}

// parseArrow parses "ident => body" where body is a bare path starting with
// ident, a parenthesized object literal "({k: path, ...})", or a quoted
// template literal. Any other shape is rejected.
func parseArrow(raw string) (arrowExpr, bool) {
	idx := strings.Index(raw, "=>")
	if idx < 0 {
		return arrowExpr{}, false
	}
	param := strings.TrimSpace(raw[:idx])
	if !isIdent(param) {
		return arrowExpr{}, false
	}
	body := strings.TrimSpace(raw[idx+2:])

	if strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")") {
		inner := strings.TrimSpace(body[1 : len(body)-1])
		if strings.HasPrefix(inner, "{") && strings.HasSuffix(inner, "}") {
			fields, order, ok := parseObjectLiteral(inner[1 : len(inner)-1])
			if !ok {
				return arrowExpr{}, false
			}
			return arrowExpr{param: param, kind: "object", fields: fields, fieldOrder: order}, true
		}
		return arrowExpr{}, false
	}

	if strings.HasPrefix(body, `"`) || strings.HasPrefix(body, `'`) {
		text, ok := unquote(body)
		if !ok {
			return arrowExpr{}, false
		}
		return arrowExpr{param: param, kind: "template", template: text}, true
	}

	if body == param || strings.HasPrefix(body, param+".") || strings.HasPrefix(body, param+"[") {
		return arrowExpr{param: param, kind: "path", path: body}, true
	}

	return arrowExpr{}, false
}

func parseObjectLiteral(inner string) (map[string]string, []string, bool) {
	fields := make(map[string]string)
	var order []string
	for _, part := range splitTopLevel(inner, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.IndexByte(part, ':')
		if idx < 0 {
			return nil, nil, false
		}
		key := strings.Trim(strings.TrimSpace(part[:idx]), `"'`)
		path := strings.TrimSpace(part[idx+1:])
		if key == "" || path == "" {
			return nil, nil, false
		}
		fields[key] = path
		order = append(order, key)
	}
	if len(order) == 0 {
		return nil, nil, false
	}
	return fields, order, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

// resolveOnElement resolves a path like "item.a.b" or "item[0].c" against
// elem, where "item" is the arrow's bound parameter name.
func resolveOnElement(path, param string, elem interface{}) (interface{}, bool) {
	if path == param {
		return elem, true
	}
	if !strings.HasPrefix(path, param) {
		return nil, false
	}
	rest := path[len(param):]
	if rest == "" || (rest[0] != '.' && rest[0] != '[') {
		return nil, false
	}
	return resolvePath(elem, rest)
}

// evalArrowBody applies a parsed arrow expression to one array element.
func evalArrowBody(expr arrowExpr, elem interface{}) interface{} {
	switch expr.kind {
	case "path":
		v, ok := resolveOnElement(expr.path, expr.param, elem)
		if !ok {
			return nil
		}
		return v
	case "object":
		obj := make(map[string]interface{}, len(expr.fieldOrder))
		for _, key := range expr.fieldOrder {
			v, ok := resolveOnElement(expr.fields[key], expr.param, elem)
			if !ok {
				obj[key] = ""
			} else {
				obj[key] = v
			}
		}
		return obj
	case "template":
		text := expandTemplate(expr.template, func(path string) (interface{}, bool) {
			return resolveOnElement(path, expr.param, elem)
		})
		return map[string]interface{}{"str": text}
	default:
		return elem
	}
}

// expandTemplate replaces every "${path}" span in raw using resolve,
// stringifying the result. Unknown paths interpolate to empty.
func expandTemplate(raw string, resolve func(path string) (interface{}, bool)) string {
	var b strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			end := matchingBrace(raw, i+1)
			if end > i+1 {
				path := raw[i+2 : end]
				if v, ok := resolve(path); ok {
					b.WriteString(scalarToString(v))
				}
				i = end + 1
				continue
			}
		}
		b.WriteByte(raw[i])
		i++
	}
	return b.String()
}
