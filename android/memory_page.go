package android

// MemoryPageSupport classifies whether an app's native libraries
// are laid out for devices with 16KB memory pages.
type MemoryPageSupport string

const (
	MemoryPageEnabled     MemoryPageSupport = "enabled"
	MemoryPageDisabled    MemoryPageSupport = "disabled"
	MemoryPageUnknown     MemoryPageSupport = "unknown"
	MemoryPageParseFailed MemoryPageSupport = "parse-failed"
)

type MemoryPageStatus struct {
	Status            MemoryPageSupport `json:"supportStatus"`
	ExtractNativeLibs string            `json:"extractNativeLibs,omitempty"`
}

// ClassifyMemoryPage derives MemoryPageStatus from the value of
// android:extractNativeLibs. Only a literal "false" keeps native
// libraries uncompressed and page-aligned in the APK. An absent
// attribute means the platform default of "true".
func ClassifyMemoryPage(extractNativeLibs string) MemoryPageStatus {
	switch extractNativeLibs {
	case "false":
		return MemoryPageStatus{Status: MemoryPageEnabled, ExtractNativeLibs: extractNativeLibs}
	case "":
		return MemoryPageStatus{Status: MemoryPageDisabled, ExtractNativeLibs: "true"}
	default:
		return MemoryPageStatus{Status: MemoryPageDisabled, ExtractNativeLibs: extractNativeLibs}
	}
}
