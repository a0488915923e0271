package upgrades

// RegisterDefaults registers the upgrade steps of the intranet profile.
func RegisterDefaults(registry *Registry, pessoa *PessoaReindexer) error {
	return registry.Register(Step{
		ID:          "reindexa-pessoa",
		Profile:     DefaultProfile,
		Source:      "1000",
		Destination: "1001",
		Title:       "Reindex area and cargo of Pessoa items",
		Handler:     pessoa.Run,
	})
}
