package lifecycle

import "svault/internal/domain"

// ScrubVault clears every decrypted field of v and drops its slices.
func ScrubVault(v *domain.Vault) {
	if v == nil {
		return
	}
	for i := range v.Entries {
		v.Entries[i] = domain.Entry{}
	}
	for i := range v.Categories {
		v.Categories[i] = ""
	}
	*v = domain.Vault{}
}
