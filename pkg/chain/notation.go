package chain

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mandelsoft/goutils/general"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/chaincomposer/pkg/models"
	"github.com/mandelsoft/chaincomposer/pkg/scanner"
)

func isNameRune(r rune) bool {
	return !unicode.IsSpace(r) && !unicode.IsControl(r) && r != utf8.RuneError &&
		!strings.ContainsRune(models.ReservedRunes, r)
}

// ModelParams returns the hyperparameters of a model
// as generic value map.
func ModelParams(m models.Model) (map[string]interface{}, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var params map[string]interface{}
	err = json.Unmarshal(data, &params)
	if err != nil {
		return nil, err
	}
	delete(params, "type")
	return params, nil
}

func header(n *Node, params bool) string {
	s := n.Type()
	if params {
		if p, err := ModelParams(n.model); err == nil && len(p) > 0 {
			keys := make([]string, 0, len(p))
			for k := range p {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			sep := "["
			for _, k := range keys {
				v, _ := json.Marshal(p[k])
				s += fmt.Sprintf("%s%s=%s", sep, k, string(v))
				sep = ","
			}
			s += "]"
		}
	}
	if n.input != nil && n.input.GetName() != DefaultInput.GetName() {
		s += "@" + n.input.GetName()
	}
	return s
}

func notation(n *Node, params bool) string {
	s := header(n, params)
	if len(n.parents) > 0 {
		sep := "("
		for _, p := range n.parents {
			s += sep + notation(p, params)
			sep = ","
		}
		s += ")"
	}
	return s
}

// Notation provides the textual notation of the subtree,
// optionally including the model hyperparameters.
func (n *Node) Notation(params bool) string {
	return notation(n, params)
}

// Notation provides the textual notation of the chain,
// optionally including the model hyperparameters.
func (c *Chain) Notation(params bool) (string, error) {
	root, err := c.Root()
	if err != nil {
		return "", err
	}
	return notation(root, params), nil
}

// Dump writes an indented representation of the subtree.
func (n *Node) Dump(w io.Writer) error {
	return dump(w, n, "")
}

// Dump writes an indented representation of the chain.
func (c *Chain) Dump(w io.Writer) error {
	root, err := c.Root()
	if err != nil {
		return err
	}
	return root.Dump(w)
}

func dump(w io.Writer, n *Node, gap string) error {
	_, err := fmt.Fprintf(w, "%s%s", gap, header(n, true))
	if err != nil {
		return err
	}

	if len(n.parents) > 0 {
		_, err := fmt.Fprintf(w, " (")
		if err != nil {
			return err
		}
		for i, p := range n.parents {
			if i > 0 {
				_, err := fmt.Fprintf(w, ",")
				if err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(w, "\n")
			if err != nil {
				return err
			}
			err = dump(w, p, gap+"  ")
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "\n%s)", gap)
		if err != nil {
			return err
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////

type parser struct {
	scanner.Scanner
	scheme models.Scheme
}

func newParser(in string, scheme models.Scheme) *parser {
	return &parser{
		Scanner: scanner.NewScanner(in),
		scheme:  scheme,
	}
}

func (p *parser) parseName(kind string) (string, error) {
	p.SkipBlanks()
	name := p.Scan(isNameRune)
	if name == "" {
		return "", p.Errorf("%s expected", kind)
	}
	return name, nil
}

func (p *parser) parseValue() (interface{}, error) {
	p.SkipBlanks()

	value := ""
	depth := 0
	var quote rune

loop:
	for c := p.Current(); ; c = p.Current() {
		switch {
		case c == scanner.EOF:
			if quote != 0 || depth > 0 {
				return nil, p.Errorf("unterminated value %q", value)
			}
			break loop
		case c == utf8.RuneError:
			return nil, p.Errorf("invalid UTF-8 in value")
		case quote != 0:
			if c == '\\' {
				value += string(c)
				c = p.Next()
				if c == scanner.EOF {
					return nil, p.Errorf("unterminated value %q", value)
				}
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth == 0 {
				break loop
			}
			depth--
		case c == ',' && depth == 0:
			break loop
		}
		value += string(c)
		p.Next()
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, p.Errorf("value expected")
	}
	var v interface{}
	err := yaml.Unmarshal([]byte(value), &v)
	if err != nil {
		return nil, p.Errorf("invalid value %q: %s", value, err)
	}
	return v, nil
}

func (p *parser) parseParams() (map[string]interface{}, error) {
	if p.SkipBlanks() != '[' {
		return nil, nil
	}
	params := map[string]interface{}{}
	for {
		p.Next()
		key, err := p.parseName("parameter name")
		if err != nil {
			return nil, err
		}
		if _, ok := params[key]; ok {
			return nil, p.Errorf("duplicate parameter %q", key)
		}
		err = p.ConsumeRune('=')
		if err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		params[key] = v
		if p.SkipBlanks() != ',' {
			break
		}
	}
	return params, p.ConsumeRune(']')
}

func (p *parser) parseNode() (*Node, error) {
	typ, err := p.parseName("model type")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	m, err := p.scheme.Configure(typ, params)
	if err != nil {
		return nil, p.Errorf("%s", err)
	}

	if p.SkipBlanks() == '(' {
		var parents []*Node
		for {
			p.Next()
			n, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			parents = append(parents, n)
			if p.SkipBlanks() != ',' {
				break
			}
		}
		err = p.ConsumeRune(')')
		if err != nil {
			return nil, err
		}
		return NewCompositeNode(m, parents...)
	}

	input := DefaultInput
	if p.Current() == '@' {
		p.Next()
		name := p.Scan(isNameRune)
		if name == "" {
			return nil, p.Errorf("input name expected")
		}
		input = NamedInput(name)
	}
	return NewSourceNode(m, input)
}

// ParseNode parses the textual notation of a node tree.
// Models are created with the given scheme (default:
// models.DefaultScheme).
func ParseNode(in string, scheme ...models.Scheme) (*Node, error) {
	p := newParser(in, general.OptionalDefaulted(models.DefaultScheme, scheme...))

	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	switch p.SkipBlanks() {
	case scanner.EOF:
	case utf8.RuneError:
		return nil, p.Errorf("invalid UTF-8")
	default:
		return nil, p.Errorf("unexpected character %q", string(p.Current()))
	}
	return n, nil
}

// Parse parses the textual notation of a chain.
// The nodes are added to the chain in pre-order.
func Parse(in string, scheme ...models.Scheme) (*Chain, error) {
	n, err := ParseNode(in, scheme...)
	if err != nil {
		return nil, err
	}
	c := New()
	err = c.AddSubtree(n)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MustParse parses a chain notation and panics on errors.
func MustParse(in string, scheme ...models.Scheme) *Chain {
	c, err := Parse(in, scheme...)
	if err != nil {
		panic(err)
	}
	return c
}
