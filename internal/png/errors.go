package png

// A FormatError reports that the input is not a valid PNG byte stream:
// a bad signature, truncated chunk framing, or an invalid numeric field.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// An UnsupportedError reports a valid but unimplemented PNG feature,
// such as palette images or unknown chunk types.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "png: unsupported feature: " + string(e) }

// An InflateError reports a failure of the compressed image data stream.
type InflateError string

func (e InflateError) Error() string { return "png: inflate: " + string(e) }

// An OrderingError reports a chunk that violates the PNG chunk
// sequencing rules. It carries the offending chunk type.
type OrderingError struct {
	Type ChunkType
}

func (e OrderingError) Error() string { return "png: unauthorized chunk: " + e.Type.String() }
