package tlload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// parseJSON reads a JSON document into the same node tree YAML sources produce
// so that both formats go through one decoder. Object key order is kept.
func parseJSON(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	p := &jsonParser{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	p.dec.UseNumber()
	n, err := p.node()
	if err != nil {
		return nil, err
	}
	_, err = p.dec.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top level value")
	}
	return n, nil
}

type jsonParser struct {
	data []byte
	dec  *json.Decoder
}

func (p *jsonParser) node() (*yaml.Node, error) {
	n := &yaml.Node{}
	p.position(n)
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			n.Kind = yaml.MappingNode
			n.Tag = "!!map"
			for p.dec.More() {
				k := &yaml.Node{}
				p.position(k)
				kt, err := p.dec.Token()
				if err != nil {
					return nil, err
				}
				k.Kind = yaml.ScalarNode
				k.Tag = "!!str"
				k.Value = kt.(string)
				v, err := p.node()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, k, v)
			}
		case '[':
			n.Kind = yaml.SequenceNode
			n.Tag = "!!seq"
			for p.dec.More() {
				v, err := p.node()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, v)
			}
		default:
			return nil, fmt.Errorf("unexpected %v", tok)
		}
		// Closing delimiter.
		_, err = p.dec.Token()
		if err != nil {
			return nil, err
		}
	case string:
		n.Kind = yaml.ScalarNode
		n.Tag = "!!str"
		n.Value = tok
	case json.Number:
		n.Kind = yaml.ScalarNode
		n.Tag = "!!str"
		n.Value = tok.String()
	case bool:
		n.Kind = yaml.ScalarNode
		n.Tag = "!!str"
		n.Value = fmt.Sprint(tok)
	case nil:
		n.Kind = yaml.ScalarNode
		n.Tag = "!!null"
		n.Value = "null"
	}
	return n, nil
}

// position records the line and column of the next token in n.
func (p *jsonParser) position(n *yaml.Node) {
	off := int(p.dec.InputOffset())
	for off < len(p.data) {
		c := p.data[off]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != ',' && c != ':' {
			break
		}
		off++
	}
	n.Line = bytes.Count(p.data[:off], []byte{'\n'}) + 1
	n.Column = off - bytes.LastIndexByte(p.data[:off], '\n')
}
