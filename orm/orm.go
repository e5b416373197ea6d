/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object. Every
model is stored protobuf encoded under the key
"<bucket name>:<key>", so that buckets never overlap and a
bucket can be iterated in key order.

A Sequence provides monotonically increasing ids whose
byte representation sorts the same way as the numbers.
*/
package orm

import (
	"github.com/gogo/protobuf/proto"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}
