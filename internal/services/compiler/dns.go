package compiler

import "github.com/tweakforge/tweakforge/internal/models"

// dnsEntry holds the resolver addresses for one provider.
type dnsEntry struct {
	Label     string
	Primary   string
	Secondary string
}

// dnsProviders is the fixed resolver table. Unknown providers fall
// back to Cloudflare.
var dnsProviders = map[models.DNSProvider]dnsEntry{
	models.DNSCloudflare: {Label: "Cloudflare", Primary: "1.1.1.1", Secondary: "1.0.0.1"},
	models.DNSGoogle:     {Label: "Google", Primary: "8.8.8.8", Secondary: "8.8.4.4"},
	models.DNSQuad9:      {Label: "Quad9", Primary: "9.9.9.9", Secondary: "149.112.112.112"},
	models.DNSAdGuard:    {Label: "AdGuard", Primary: "94.140.14.14", Secondary: "94.140.15.15"},
}

// resolveDNS returns the entry for a provider, falling back to the
// Cloudflare default for anything unrecognized.
func resolveDNS(provider models.DNSProvider) dnsEntry {
	if entry, ok := dnsProviders[provider]; ok {
		return entry
	}
	return dnsProviders[models.DNSCloudflare]
}

// DNSProviders returns the provider table for the catalog API, keyed
// by provider name.
func DNSProviders() map[string]map[string]string {
	out := make(map[string]map[string]string, len(dnsProviders))
	for provider, entry := range dnsProviders {
		out[string(provider)] = map[string]string{
			"label":     entry.Label,
			"primary":   entry.Primary,
			"secondary": entry.Secondary,
		}
	}
	return out
}
