package policy

import (
	"encoding/json"

	"github.com/a-pavithraa/iam-statements/statement"
)

// Document is an IAM policy document made of built statements.
type Document struct {
	Version   version
	Statement []*statement.Statement
}

// New returns a document holding statements in order.
func New(statements ...*statement.Statement) *Document {
	return &Document{Statement: statements}
}

// Add appends statements to d.
func (d *Document) Add(statements ...*statement.Statement) *Document {
	d.Statement = append(d.Statement, statements...)
	return d
}

func (d *Document) JSON() (string, error) {
	b, err := json.MarshalIndent(d, "", "\t")
	return string(b), err
}

// Merge concatenates the statements of every document into a new one.
func Merge(docs ...*Document) *Document {
	merged := &Document{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		merged.Statement = append(merged.Statement, doc.Statement...)
	}
	return merged
}

// Version is the only policy language version IAM accepts for new policies.
const Version = "2012-10-17"

type version struct{}

func (version) MarshalJSON() ([]byte, error) {
	return []byte(`"` + Version + `"`), nil
}
