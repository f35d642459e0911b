package resample

// Error is a precondition violation detected before a sweep starts.
type Error int

const (
	ErrSourceEmpty Error = iota + 1
	ErrTargetSizeInvalid
	ErrScaleInvalid
	ErrOutOfRange
)

func (e Error) Error() string {
	switch e {
	case ErrSourceEmpty:
		return "resample: source grid is empty"
	case ErrTargetSizeInvalid:
		return "resample: target size is invalid"
	case ErrScaleInvalid:
		return "resample: scale factor must be positive"
	case ErrOutOfRange:
		return "resample: dimension exceeds the fixed-point integer range"
	}
	return "resample: unknown error"
}
