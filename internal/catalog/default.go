package catalog

// DefaultKey is the planet shown before any selection.
const DefaultKey = "earth"

var defaultPlanets = []PlanetSpec{
	{
		Key:         "mercury",
		Name:        "Mercury",
		Texture:     "textures/mercury_texture.jpg",
		Description: "The smallest and closest planet to the Sun, known for its rocky, cratered surface.",
		Group:       GroupTerrestrial,
	},
	{
		Key:         "venus",
		Name:        "Venus",
		Texture:     "textures/venus_texture.jpg",
		Description: "The second planet from the Sun, with a rocky surface and no moons.",
		Group:       GroupTerrestrial,
	},
	{
		Key:         "earth",
		Name:        "Earth",
		Texture:     "textures/earth_texture.jpg",
		Description: "Our home planet, a rocky planet with a solid surface and one moon.",
		Group:       GroupTerrestrial,
	},
	{
		Key:         "mars",
		Name:        "Mars",
		Texture:     "textures/mars_texture.jpg",
		Description: `The "Red Planet," a rocky world with very few or no moons.`,
		Group:       GroupTerrestrial,
	},
	{
		Key:         "jupiter",
		Name:        "Jupiter",
		Texture:     "textures/jupiter_texture.jpg",
		Description: "A gas giant, the largest planet in our solar system, and the fifth planet from the Sun.",
		Group:       GroupJovian,
	},
	{
		Key:         "saturn",
		Name:        "Saturn",
		Texture:     "textures/saturn_texture.jpg",
		RingTexture: "textures/saturn_rings.png",
		Description: "A gas giant, famous for its prominent rings and the sixth planet from the Sun.",
		Group:       GroupJovian,
	},
	{
		Key:         "uranus",
		Name:        "Uranus",
		Texture:     "textures/uranus_texture.jpg",
		Description: "An ice giant, the seventh planet from the Sun.",
		Group:       GroupJovian,
	},
	{
		Key:         "neptune",
		Name:        "Neptune",
		Texture:     "textures/neptune_texture.jpg",
		Description: "The farthest planet from the Sun, another ice giant, and the eighth planet from the Sun.",
		Group:       GroupJovian,
	},
}

// Default returns the built-in eight-planet catalog.
func Default() *Catalog {
	return MustNew(defaultPlanets)
}
