package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lestrrat-go/jsref/v2"
)

// splitReference splits a $ref/$dynamicRef value into its URI part and its
// fragment part (including the leading '#', or empty if none).
func splitReference(reference string) (uri, fragment string, err error) {
	return jsref.Split(reference)
}

// resolveReference locates the target Node for uri (possibly compiling it
// on demand) and, if uri carries a fragment, descends into it via
// resolveFragment.
//
// callerScope is the DynamicScope frame active at the $ref/$dynamicRef use
// site; it is only consulted (via the frame constructed below) for dynamic
// bookending, never mutated here.
func (c *Compiler) resolveReference(n *Node, uri string, dynamic bool, callerScope *DynamicScope) (*Node, error) {
	uriPart, fragment, err := splitReference(uri)
	if err != nil {
		return nil, &ReferenceError{Reference: uri, Reason: "malformed reference syntax", Cause: err}
	}

	var target *Node
	switch {
	case hasAbsoluteScheme(uriPart):
		entry, ok := c.registry.lookup(uriPart)
		if !ok {
			return nil, &ReferenceError{Reference: uri, Reason: "no schema registered at " + uriPart}
		}
		target, err = c.ensureCompiled(uriPart, entry)
		if err != nil {
			return nil, err
		}

	case len(uriPart) > 0:
		if n.Scope == nil || n.Scope.Root == nil || n.Scope.Root.URI == "" {
			return nil, &ReferenceError{Reference: uri, Reason: "no absolute base URI in current lexical scope"}
		}
		base := n.Scope.Root.URI
		delimiter := "/"
		if strings.HasPrefix(base, "urn:") {
			delimiter = ":"
		}
		baseParts := strings.Split(base, delimiter)

		var resolvedBase string
		if strings.HasPrefix(uriPart, "/") || strings.HasPrefix(uriPart, ":") {
			authorityLen := 3
			if authorityLen > len(baseParts) {
				authorityLen = len(baseParts)
			}
			resolvedBase = strings.Join(baseParts[:authorityLen], delimiter)
		} else {
			resolvedBase = strings.Join(baseParts[:len(baseParts)-1], delimiter) + delimiter
		}
		resolvedURI := resolvedBase + uriPart

		entry, ok := c.registry.lookup(resolvedURI)
		if !ok {
			return nil, &ReferenceError{Reference: uri, Reason: "no schema registered at " + resolvedURI}
		}
		target, err = c.ensureCompiled(resolvedURI, entry)
		if err != nil {
			return nil, err
		}

	default: // empty path: target is the current scope's root node
		target = n.Scope.Root
	}

	if fragment == "" {
		return target, nil
	}

	frameScope := newDynamicScope(target.Scope, callerScope)
	return c.resolveFragment(target, fragment, dynamic, frameScope)
}

// resolveFragment dispatches on the static ($ref) vs. dynamic ($dynamicRef)
// case, then falls back to JSON Pointer navigation.
func (c *Compiler) resolveFragment(target *Node, fragment string, dynamic bool, scope *DynamicScope) (*Node, error) {
	frag := strings.TrimPrefix(fragment, "#")

	if !dynamic {
		if !strings.HasPrefix(frag, "/") && frag != "" {
			if node, ok := target.Scope.Anchors[frag]; ok {
				return node, nil
			}
			if node, ok := target.Scope.DynamicAnchors[frag]; ok {
				return node, nil
			}
		}
	} else {
		// Bookending: if the scope the $dynamicRef is evaluated from does
		// not itself declare a dynamic anchor of this name but does
		// declare a regular anchor of the same name, that anchor wins
		// outright.
		if _, hasDynamic := scope.Lexical.DynamicAnchors[frag]; !hasDynamic {
			if node, ok := scope.Lexical.Anchors[frag]; ok {
				return node, nil
			}
		}

		// Otherwise walk the dynamic scope chain from innermost to
		// outermost; the last (i.e. outermost) frame whose lexical scope
		// declares this dynamic anchor wins.
		var found *Node
		for s := scope; s != nil; s = s.Previous {
			if node, ok := s.Lexical.DynamicAnchors[frag]; ok {
				found = node
			}
		}
		if found != nil {
			return found, nil
		}
	}

	if frag == "" {
		return target, nil
	}
	return c.resolveJSONPointer(target, frag)
}

// resolveJSONPointer descends frag (an RFC 6901 pointer, without its
// leading '#', still carrying its leading '/') through target's compiled
// shape. The final value reached must be a *Node, or resolution fails.
func (c *Compiler) resolveJSONPointer(target *Node, frag string) (*Node, error) {
	tokens := strings.Split(strings.TrimPrefix(frag, "/"), "/")

	var current any = target
	for i := 0; i < len(tokens); i++ {
		tok := decodePointerToken(tokens[i])

		next, err := descendOne(current, tok)
		if err != nil {
			return nil, &ReferenceError{Reference: "#" + frag, Reason: err.Error()}
		}
		current = next
	}

	node, ok := current.(*Node)
	if !ok {
		return nil, &ReferenceError{Reference: "#" + frag, Reason: "fragment does not resolve to a schema"}
	}
	return node, nil
}

// decodePointerToken undoes RFC 6901 escaping (~1 -> '/', ~0 -> '~') and
// percent-decoding (%HH).
func decodePointerToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")

	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] == '%' && i+2 < len(tok) {
			if n, err := strconv.ParseUint(tok[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(n))
				i += 2
				continue
			}
		}
		b.WriteByte(tok[i])
	}
	return b.String()
}

func descendOne(current any, token string) (any, error) {
	switch c := current.(type) {
	case *Node:
		field, ok := c.Raw[token]
		if !ok {
			return nil, errTokenf("keyword %q not present", token)
		}
		return field, nil
	case []*Node:
		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, errTokenf("expected array index, got %q", token)
		}
		if idx < 0 || idx >= len(c) {
			return nil, errTokenf("array index %d out of range (length %d)", idx, len(c))
		}
		return c[idx], nil
	case *NodeMap:
		node, ok := c.Get(token)
		if !ok {
			return nil, errTokenf("map key %q not present", token)
		}
		return node, nil
	case Value:
		switch c.Kind() {
		case KindObject:
			v, ok := c.Object().Get(token)
			if !ok {
				return nil, errTokenf("object key %q not present", token)
			}
			return v, nil
		case KindArray:
			idx, err := strconv.Atoi(token)
			if err != nil {
				return nil, errTokenf("expected array index, got %q", token)
			}
			arr := c.Array()
			if idx < 0 || idx >= len(arr) {
				return nil, errTokenf("array index %d out of range (length %d)", idx, len(arr))
			}
			return arr[idx], nil
		default:
			return nil, errTokenf("cannot descend into %s", c.Kind())
		}
	default:
		return nil, errTokenf("cannot descend into %T", current)
	}
}

func errTokenf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
