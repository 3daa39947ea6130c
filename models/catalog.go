package models

import (
	"math/rand/v2"
	"strings"

	"github.com/gosimple/unidecode"
)

// Species identifies a huntable creature. The zero value is the unset sentinel.
type Species string

// NoSpecies is the unset species sentinel.
const NoSpecies Species = ""

// Trait is a qualifying attribute of a caught creature (e.g. its nature).
type Trait string

// Catalog holds the species and trait domains hunts are drawn from.
type Catalog struct {
	Species []Species
	Traits  []Trait
}

// RandomSpecies picks a species uniformly at random.
func (c *Catalog) RandomSpecies() Species {
	return c.Species[rand.IntN(len(c.Species))]
}

// RandomTrait picks a trait uniformly at random.
func (c *Catalog) RandomTrait() Trait {
	return c.Traits[rand.IntN(len(c.Traits))]
}

// LookupSpecies resolves user input to a catalog species, ignoring case,
// accents and punctuation ("mr. mime" finds "MrMime").
func (c *Catalog) LookupSpecies(name string) (Species, bool) {
	key := lookupKey(name)
	if key == "" {
		return NoSpecies, false
	}
	for _, s := range c.Species {
		if lookupKey(string(s)) == key {
			return s, true
		}
	}
	return NoSpecies, false
}

// LookupTrait resolves user input to a catalog trait.
func (c *Catalog) LookupTrait(name string) (Trait, bool) {
	key := lookupKey(name)
	if key == "" {
		return "", false
	}
	for _, t := range c.Traits {
		if lookupKey(string(t)) == key {
			return t, true
		}
	}
	return "", false
}

func lookupKey(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultCatalog returns the Kanto species list and the 25 natures.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Species: make([]Species, len(kantoSpecies)),
		Traits:  make([]Trait, len(natures)),
	}
	for i, s := range kantoSpecies {
		c.Species[i] = Species(s)
	}
	for i, n := range natures {
		c.Traits[i] = Trait(n)
	}
	return c
}

var natures = []string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

var kantoSpecies = []string{
	"Bulbasaur", "Ivysaur", "Venusaur", "Charmander", "Charmeleon", "Charizard",
	"Squirtle", "Wartortle", "Blastoise", "Caterpie", "Metapod", "Butterfree",
	"Weedle", "Kakuna", "Beedrill", "Pidgey", "Pidgeotto", "Pidgeot",
	"Rattata", "Raticate", "Spearow", "Fearow", "Ekans", "Arbok",
	"Pikachu", "Raichu", "Sandshrew", "Sandslash", "Nidoranfemale", "Nidorina",
	"Nidoqueen", "Nidoranmale", "Nidorino", "Nidoking", "Clefairy", "Clefable",
	"Vulpix", "Ninetales", "Jigglypuff", "Wigglytuff", "Zubat", "Golbat",
	"Oddish", "Gloom", "Vileplume", "Paras", "Parasect", "Venonat",
	"Venomoth", "Diglett", "Dugtrio", "Meowth", "Persian", "Psyduck",
	"Golduck", "Mankey", "Primeape", "Growlithe", "Arcanine", "Poliwag",
	"Poliwhirl", "Poliwrath", "Abra", "Kadabra", "Alakazam", "Machop",
	"Machoke", "Machamp", "Bellsprout", "Weepinbell", "Victreebel", "Tentacool",
	"Tentacruel", "Geodude", "Graveler", "Golem", "Ponyta", "Rapidash",
	"Slowpoke", "Slowbro", "Magnemite", "Magneton", "Farfetchd", "Doduo",
	"Dodrio", "Seel", "Dewgong", "Grimer", "Muk", "Shellder",
	"Cloyster", "Gastly", "Haunter", "Gengar", "Onix", "Drowzee",
	"Hypno", "Krabby", "Kingler", "Voltorb", "Electrode", "Exeggcute",
	"Exeggutor", "Cubone", "Marowak", "Hitmonlee", "Hitmonchan", "Lickitung",
	"Koffing", "Weezing", "Rhyhorn", "Rhydon", "Chansey", "Tangela",
	"Kangaskhan", "Horsea", "Seadra", "Goldeen", "Seaking", "Staryu",
	"Starmie", "MrMime", "Scyther", "Jynx", "Electabuzz", "Magmar",
	"Pinsir", "Tauros", "Magikarp", "Gyarados", "Lapras", "Ditto",
	"Eevee", "Vaporeon", "Jolteon", "Flareon", "Porygon", "Omanyte",
	"Omastar", "Kabuto", "Kabutops", "Aerodactyl", "Snorlax", "Articuno",
	"Zapdos", "Moltres", "Dratini", "Dragonair", "Dragonite", "Mewtwo",
	"Mew",
}
