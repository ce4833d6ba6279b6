package nbt

// DefaultMaxDepth is the nesting limit used when no WithMaxDepth option is
// given. The root compound counts as depth 1.
const DefaultMaxDepth = 512

type options struct {
	maxDepth      int
	maxElements   int
	allowTrailing bool
}

func defaultOptions() options {
	return options{maxDepth: DefaultMaxDepth}
}

// Option configures a Codec.
type Option func(*options)

// WithMaxDepth limits how deeply lists and compounds may nest, on both decode
// and encode. A limit <= 0 disables the check.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithMaxElements limits the element count of any single list or array on
// decode. A limit <= 0 leaves only the remaining-input bound in place.
func WithMaxElements(n int) Option {
	return func(o *options) {
		o.maxElements = n
	}
}

// WithAllowTrailing makes Decode ignore bytes after the root compound instead
// of failing with ErrTrailingData.
func WithAllowTrailing() Option {
	return func(o *options) {
		o.allowTrailing = true
	}
}
