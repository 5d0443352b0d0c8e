package testutil

// WithStandardCollection adds a three-scene streaming setup.
//
// Structure:
//
//	Main           Camera, Mic/Aux, Desktop Audio
//	BRB            Desktop Audio (invisible)
//	Starting Soon  (empty)
func (b *Builder) WithStandardCollection() *Builder {
	return b.
		WithInput("Desktop Audio", InputType("wasapi_output_capture"), Hidden()).
		WithInput("Mic/Aux", InputType("wasapi_input_capture"), Hidden()).
		WithInput("Camera", InputType("dshow_input")).
		WithScene("Main", Item("Camera"), Item("Mic/Aux"), Item("Desktop Audio")).
		WithScene("BRB", Item("Desktop Audio", Invisible())).
		WithScene("Starting Soon").
		Current("Main")
}

// WithSharedSourceCollection adds two scenes referencing the same inputs,
// the shape a by-reference duplicate produces.
func (b *Builder) WithSharedSourceCollection() *Builder {
	return b.
		WithInput("Mic/Aux", InputType("wasapi_input_capture"), Hidden()).
		WithInput("Camera").
		WithScene("Scene", Item("Camera"), Item("Mic/Aux")).
		WithScene("Scene 2", Item("Camera"), Item("Mic/Aux")).
		Current("Scene 2")
}
