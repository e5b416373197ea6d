package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
	Owner []byte `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (c *counter) Reset()         { *c = counter{} }
func (c *counter) String() string { return proto.CompactTextString(c) }
func (*counter) ProtoMessage()    {}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

type other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (o *other) Reset()         { *o = other{} }
func (o *other) String() string { return proto.CompactTextString(o) }
func (*other) ProtoMessage()    {}
func (o *other) Validate() error { return nil }
