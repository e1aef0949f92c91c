package sim

// Adrenaline economy constants.
const (
	// MaxAdrenaline is the hard cap on the adrenaline balance; anything
	// above it is wasted.
	MaxAdrenaline = 100.0

	// UltimateCost is the adrenaline change declared by ultimate abilities.
	UltimateCost = -100.0

	// ThresholdCost is the adrenaline change declared by threshold abilities.
	ThresholdCost = -15.0

	// ringOfVigourCost replaces UltimateCost when the Ring of Vigour
	// passive is active (10 adrenaline kept).
	ringOfVigourCost = -90.0

	// asrFreeChance is the probability that an ASR proc waives a threshold
	// cost entirely. Only rolled under randomized runs.
	asrFreeChance = 0.10
)
