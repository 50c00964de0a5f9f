package domain

// GPUListing is one record from the marketplace device listing. Only the
// GPU type string is interpreted; all other response fields pass through
// unread.
type GPUListing struct {
	DeviceID string `json:"device_id"`
	GPUType  string `json:"gpu_type"`
}
