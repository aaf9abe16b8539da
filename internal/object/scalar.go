package object

// None is the null scalar.
type None struct{}

// Bool is a boolean scalar.
type Bool bool

// Int is an integer scalar.
type Int int64

// Float is a floating point scalar.
type Float float64

// Str is a text scalar. Text scalars expose no item enumeration.
type Str string

// Bytes is an immutable byte string.
type Bytes string

func (None) Shape() *Shape  { return NoneShape }
func (Bool) Shape() *Shape  { return BoolShape }
func (Int) Shape() *Shape   { return IntShape }
func (Float) Shape() *Shape { return FloatShape }
func (Str) Shape() *Shape   { return StrShape }
func (Bytes) Shape() *Shape { return BytesShape }

func (None) hashable()  {}
func (Bool) hashable()  {}
func (Int) hashable()   {}
func (Float) hashable() {}
func (Str) hashable()   {}
func (Bytes) hashable() {}
