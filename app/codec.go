package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// ResultSet is the wire form of query results. A query response carries
// two sets of equal length, one for the keys and one for the values.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func (m *ResultSet) GetResults() [][]byte {
	if m != nil {
		return m.Results
	}
	return nil
}

// splitModels returns the key and value sets of a query response.
func splitModels(models []barter.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i] = m.Key
		values.Results[i] = m.Value
	}
	return keys, values
}

// JoinResults pairs the key and value sets of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]barter.Model, error) {
	if len(keys.GetResults()) != len(values.GetResults()) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values",
			len(keys.GetResults()), len(values.GetResults()))
	}
	models := make([]barter.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = barter.Model{Key: k, Value: values.Results[i]}
	}
	return models, nil
}
