package types

// Envelope is an ECIES-sealed message. All fields are lowercase hex without a
// 0x prefix.
type Envelope struct {
	IV             string `json:"iv"`
	EphemPublicKey string `json:"ephemPublicKey"`
	Ciphertext     string `json:"ciphertext"`
	MAC            string `json:"mac"`
}
