package app

// Output holds the entities a use case produced.
// It is the data part of a response, independent of any transport.
type Output[E any] struct {
	Data []E `json:"data"`
}

// NewOutput returns an Output holding data.
// The Data of an Output is never nil, so that it is rendered as an empty list.
func NewOutput[E any](data ...E) Output[E] {
	if data == nil {
		data = []E{}
	}

	return Output[E]{Data: data}
}

// Add appends entities to the output.
func (o *Output[E]) Add(e ...E) {
	o.Data = append(o.Data, e...)
}

// Len returns the number of entities in the output.
func (o Output[E]) Len() int {
	return len(o.Data)
}
