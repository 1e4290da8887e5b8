package types

// Channel is a persisted catalog record for one independently-activatable
// update channel. Only Active is mutated after creation; the remaining fields
// identify and describe the channel for display and ordering.
type Channel struct {
	Name        string `json:"name" yaml:"name" dynamodbav:"name"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty" dynamodbav:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" dynamodbav:"description"`
	Rank        int    `json:"rank" yaml:"rank" dynamodbav:"rank"`
	Active      bool   `json:"active" yaml:"active" dynamodbav:"active"`
}

// ResourceName satisfies the minimal resource contract, so backends may hand
// out bare records when they expose no richer per-entry shape.
func (c Channel) ResourceName() string { return c.Name }
