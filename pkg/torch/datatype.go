package torch

import "fmt"

// DataType tags the element type of a tensor. The values follow the runtime's
// fixed wire encoding; tags outside the known set are carried verbatim so an
// unknown code survives a round trip.
type DataType uint32

const (
	Float    DataType = 1
	Double   DataType = 2
	Int32    DataType = 3
	UInt8    DataType = 4
	Int16    DataType = 5
	Int8     DataType = 6
	Int64    DataType = 9
	Bool     DataType = 10
	BFloat16 DataType = 14
	UInt16   DataType = 17
	Half     DataType = 19
	UInt32   DataType = 22
	UInt64   DataType = 23
)

var dataTypeNames = map[DataType]string{
	Float:    "Float",
	Double:   "Double",
	Int32:    "Int32",
	UInt8:    "UInt8",
	Int16:    "Int16",
	Int8:     "Int8",
	Int64:    "Int64",
	Bool:     "Bool",
	BFloat16: "BFloat16",
	UInt16:   "UInt16",
	Half:     "Half",
	UInt32:   "UInt32",
	UInt64:   "UInt64",
}

var dataTypeSizes = map[DataType]int{
	Float:    4,
	Double:   8,
	Int32:    4,
	UInt8:    1,
	Int16:    2,
	Int8:     1,
	Int64:    8,
	Bool:     1,
	BFloat16: 2,
	UInt16:   2,
	Half:     2,
	UInt32:   4,
	UInt64:   8,
}

// Known reports whether dt is a member of the closed tag set.
func (dt DataType) Known() bool {
	_, ok := dataTypeNames[dt]
	return ok
}

// Size returns the byte size of one element, or 0 for an unknown tag.
func (dt DataType) Size() int { return dataTypeSizes[dt] }

func (dt DataType) String() string {
	if name, ok := dataTypeNames[dt]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint32(dt))
}
