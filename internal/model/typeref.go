package model

import "encoding/json"

// Type is a parsed property type. It is one of BasicType, UserDefinedType or
// CollectionType.
type Type interface {
	Category() TypeKind
	// String renders the type as C# source.
	String() string
	isType()
}

// BasicKind enumerates the built-in C# type names the classifier recognizes.
type BasicKind int

const (
	Bool BasicKind = iota
	Byte
	SByte
	Char
	Decimal
	Double
	Float
	Int
	UInt
	NInt
	NUInt
	Long
	ULong
	Short
	UShort
	ObjectKeyword
	StringKeyword
	Dynamic
	SystemBoolean
	SystemByte
	SystemSByte
	SystemChar
	SystemDecimal
	SystemDouble
	SystemSingle
	SystemInt32
	SystemUInt32
	SystemIntPtr
	SystemUIntPtr
	SystemInt64
	SystemUInt64
	SystemInt16
	SystemUInt16
	SystemObject
	SystemString
	Guid
	DateTime
	DateTimeOffset
	TimeSpan
	Half
)

var basicNames = [...]string{
	Bool:           "bool",
	Byte:           "byte",
	SByte:          "sbyte",
	Char:           "char",
	Decimal:        "decimal",
	Double:         "double",
	Float:          "float",
	Int:            "int",
	UInt:           "uint",
	NInt:           "nint",
	NUInt:          "nuint",
	Long:           "long",
	ULong:          "ulong",
	Short:          "short",
	UShort:         "ushort",
	ObjectKeyword:  "object",
	StringKeyword:  "string",
	Dynamic:        "dynamic",
	SystemBoolean:  "Boolean",
	SystemByte:     "Byte",
	SystemSByte:    "SByte",
	SystemChar:     "Char",
	SystemDecimal:  "Decimal",
	SystemDouble:   "Double",
	SystemSingle:   "Single",
	SystemInt32:    "Int32",
	SystemUInt32:   "UInt32",
	SystemIntPtr:   "IntPtr",
	SystemUIntPtr:  "UIntPtr",
	SystemInt64:    "Int64",
	SystemUInt64:   "UInt64",
	SystemInt16:    "Int16",
	SystemUInt16:   "UInt16",
	SystemObject:   "Object",
	SystemString:   "String",
	Guid:           "Guid",
	DateTime:       "DateTime",
	DateTimeOffset: "DateTimeOffset",
	TimeSpan:       "TimeSpan",
	Half:           "Half",
}

var basicByName = func() map[string]BasicKind {
	m := make(map[string]BasicKind, len(basicNames))
	for k, name := range basicNames {
		m[name] = BasicKind(k)
	}
	return m
}()

// BasicKinds returns every basic kind in declaration order.
func BasicKinds() []BasicKind {
	kinds := make([]BasicKind, len(basicNames))
	for i := range basicNames {
		kinds[i] = BasicKind(i)
	}
	return kinds
}

// LookupBasic finds the basic kind with exactly the given (case-sensitive) name.
func LookupBasic(name string) (BasicKind, bool) {
	k, ok := basicByName[name]
	return k, ok
}

func (k BasicKind) String() string {
	if k < 0 || int(k) >= len(basicNames) {
		return "unknown"
	}
	return basicNames[k]
}

// CollectionKind enumerates the generic containers the classifier recognizes.
type CollectionKind int

const (
	Dictionary CollectionKind = iota
	List
	IList
	ICollection
	Collection
	IEnumerable
	Enumerable
	Queue
	SortedList
	Stack
	ArrayList
	Hashtable
)

var collectionNames = [...]string{
	Dictionary:  "Dictionary",
	List:        "List",
	IList:       "IList",
	ICollection: "ICollection",
	Collection:  "Collection",
	IEnumerable: "IEnumerable",
	Enumerable:  "Enumerable",
	Queue:       "Queue",
	SortedList:  "SortedList",
	Stack:       "Stack",
	ArrayList:   "ArrayList",
	Hashtable:   "Hashtable",
}

// LookupCollection finds the collection kind with exactly the given name.
func LookupCollection(name string) (CollectionKind, bool) {
	for k, n := range collectionNames {
		if n == name {
			return CollectionKind(k), true
		}
	}
	return 0, false
}

func (k CollectionKind) String() string {
	if k < 0 || int(k) >= len(collectionNames) {
		return "unknown"
	}
	return collectionNames[k]
}

// Keyed reports whether the container maps keys to values in C#.
func (k CollectionKind) Keyed() bool {
	switch k {
	case Dictionary, SortedList, Hashtable:
		return true
	}
	return false
}

// BasicType is a built-in scalar type.
type BasicType struct {
	Kind BasicKind
}

// UserDefinedType is any type name the classifier does not recognize.
type UserDefinedType struct {
	Name string
}

// CollectionType is a recognized container wrapping exactly one inner type.
type CollectionType struct {
	Collection    CollectionKind
	Inner         Type
	InnerNullable bool // The type argument carried its own '?'
}

// Basic is shorthand for constructing a BasicType.
func Basic(k BasicKind) BasicType { return BasicType{Kind: k} }

func (BasicType) Category() TypeKind { return KindBasic }
func (UserDefinedType) Category() TypeKind { return KindUserDefined }
func (CollectionType) Category() TypeKind { return KindCollection }

func (BasicType) isType() {}
func (UserDefinedType) isType() {}
func (CollectionType) isType() {}

func (t BasicType) String() string { return t.Kind.String() }
func (t UserDefinedType) String() string { return t.Name }

func (t CollectionType) String() string {
	inner := ""
	if t.Inner != nil {
		inner = t.Inner.String()
	}
	if t.InnerNullable {
		inner += "?"
	}
	return t.Collection.String() + "<" + inner + ">"
}

// typeDoc is the serialized form shared by the JSON and YAML encodings.
type typeDoc struct {
	Kind          TypeKind `json:"kind" yaml:"kind"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Collection    string   `json:"collection,omitempty" yaml:"collection,omitempty"`
	Inner         *typeDoc `json:"inner,omitempty" yaml:"inner,omitempty"`
	InnerNullable bool     `json:"innerNullable,omitempty" yaml:"innerNullable,omitempty"`
}

func docOf(t Type) *typeDoc {
	switch v := t.(type) {
	case BasicType:
		return &typeDoc{Kind: KindBasic, Name: v.String()}
	case UserDefinedType:
		return &typeDoc{Kind: KindUserDefined, Name: v.Name}
	case CollectionType:
		return &typeDoc{
			Kind:          KindCollection,
			Collection:    v.Collection.String(),
			Inner:         docOf(v.Inner),
			InnerNullable: v.InnerNullable,
		}
	}
	return nil
}

func (t BasicType) MarshalJSON() ([]byte, error) { return json.Marshal(docOf(t)) }
func (t UserDefinedType) MarshalJSON() ([]byte, error) { return json.Marshal(docOf(t)) }
func (t CollectionType) MarshalJSON() ([]byte, error) { return json.Marshal(docOf(t)) }

func (t BasicType) MarshalYAML() (any, error) { return docOf(t), nil }
func (t UserDefinedType) MarshalYAML() (any, error) { return docOf(t), nil }
func (t CollectionType) MarshalYAML() (any, error) { return docOf(t), nil }
