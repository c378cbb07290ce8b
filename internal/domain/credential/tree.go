package credential

import "strings"

// ContainerTags are the element names searched for account records, in order.
var ContainerTags = []string{"user", "account", "person", "record", "row", "eintrag", "datensatz"}

// TagMapping names exact element tags to consult before the heuristics.
// Matching is case-insensitive. Zero values leave the heuristics alone.
type TagMapping struct {
	Container    string   `yaml:"container,omitempty"`
	Surname      []string `yaml:"surname,omitempty"`
	GivenName    []string `yaml:"given_name,omitempty"`
	Email        []string `yaml:"email,omitempty"`
	Password     []string `yaml:"password,omitempty"`
	SafePassword []string `yaml:"safe_password,omitempty"`
	Category     []string `yaml:"category,omitempty"`
}

// FromTree ingests a parsed markup document. Candidate records are all
// descendants named like a known container, else the root's children, else
// the root itself.
func FromTree(root *Node, mapping TagMapping) []Record {
	if root == nil {
		return nil
	}
	var records []Record
	for i, node := range candidates(root, mapping) {
		rec := Record{ID: recordID(i)}
		node.Walk(func(n *Node) {
			if !n.Leaf() {
				return
			}
			text := strings.TrimSpace(n.Text)
			if text == "" {
				return
			}
			classifyLeaf(&rec, strings.ToLower(n.Tag), text, mapping)
		})
		if len(rec.Categories) == 0 {
			if len(rec.Groups) > 0 {
				rec.Categories = append(rec.Categories, CategoryTrainee)
			} else {
				rec.Categories = append(rec.Categories, CategoryStaff)
			}
		}
		records = append(records, rec)
	}
	return records
}

func candidates(root *Node, mapping TagMapping) []*Node {
	tags := ContainerTags
	if mapping.Container != "" {
		tags = []string{mapping.Container}
	}
	var found []*Node
	for _, tag := range tags {
		for _, c := range root.Children {
			c.Walk(func(n *Node) {
				if n.Tag == tag {
					found = append(found, n)
				}
			})
		}
	}
	if len(found) > 0 {
		return found
	}
	if len(root.Children) > 0 {
		return root.Children
	}
	return []*Node{root}
}

func classifyLeaf(rec *Record, tag, text string, mapping TagMapping) {
	if mapped(rec, tag, text, mapping) {
		return
	}
	if containsAny(tag, "nachname", "lastname", "surname") {
		rec.Surnames = append(rec.Surnames, text)
		return
	}
	if containsAny(tag, "vorname", "firstname", "givenname", "given_name") {
		rec.GivenNames = append(rec.GivenNames, text)
		return
	}
	scanContent(rec, text)
	if containsAny(tag, "kennwort", "password") {
		if strings.Contains(tag, "safe") {
			rec.SafePasswords = append(rec.SafePasswords, text)
		} else {
			rec.Passwords = append(rec.Passwords, text)
		}
	}
	if containsAny(tag, "system", "typ", "type") {
		rec.Categories = append(rec.Categories, text)
	}
}

// mapped handles leaves named by an explicit mapping.
func mapped(rec *Record, tag, text string, m TagMapping) bool {
	switch {
	case hasTag(m.Surname, tag):
		rec.Surnames = append(rec.Surnames, text)
	case hasTag(m.GivenName, tag):
		rec.GivenNames = append(rec.GivenNames, text)
	case hasTag(m.Email, tag):
		rec.Emails = append(rec.Emails, text)
	case hasTag(m.SafePassword, tag):
		rec.SafePasswords = append(rec.SafePasswords, text)
	case hasTag(m.Password, tag):
		rec.Passwords = append(rec.Passwords, text)
	case hasTag(m.Category, tag):
		rec.Categories = append(rec.Categories, text)
	default:
		return false
	}
	return true
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
