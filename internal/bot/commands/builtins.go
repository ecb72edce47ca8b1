package commands

func builtins() []Command {
	return []Command{
		{Name: "roll", Usage: "roll <dice|text>", Description: "Roll dice, or roll every notation in a line of text", Handler: roll},
		{Name: "init", Usage: "init [name] [initiative]", Description: "Set or roll a character's initiative", Handler: setInitiative},
		{Name: "inis", Usage: "inis", Description: "Show the initiative order", Handler: initiativeOrder},
		{Name: "new", Usage: "new <name>", Description: "Create a random level 0 character", Handler: newCharacter},
		{Name: "set", Usage: "set [name] <attribute> <value>", Description: "Set a character attribute", Handler: setAttribute},
		{Name: "char", Usage: "char [name]", Description: "Show a character", Handler: getCharacter},
		{Name: "chars", Usage: "chars", Description: "List every character", Handler: listCharacters},
		{Name: "remove", Usage: "remove [name]", Description: "Delete a character", Handler: removeCharacter},
		{Name: "play", Usage: "play [name]", Description: "Make a character your active one", Handler: play},
		{Name: "park", Usage: "park [name]", Description: "Deactivate a character", Handler: park},
		{Name: "luck", Usage: "luck [name] [dice]", Description: "Roll under a character's luck", Handler: luck},
		{Name: "abl", Usage: "abl <ability>", Description: "Describe an ability", Handler: ability},
		{Name: "abls", Usage: "abls", Description: "Describe every ability", Handler: abilities},
		{Name: "mod", Usage: "mod <score>", Description: "Show the modifier for an ability score", Handler: modifier},
		{Name: "mods", Usage: "mods", Description: "Show the ability modifier table", Handler: modifiers},
		{Name: "augur", Usage: "augur [roll]", Description: "Show an augur, random without a roll", Handler: augur},
		{Name: "augurs", Usage: "augurs", Description: "List every augur", Handler: augurs},
		{Name: "occupations", Usage: "occupations", Description: "List every occupation", Handler: occupations},
		{Name: "classes", Usage: "classes", Description: "List the classes", Handler: classes},
		{Name: "cls", Usage: "cls <class>", Description: "Show a class", Handler: class},
		{Name: "crit", Usage: "crit <table> <roll>", Description: "Look up a critical hit", Handler: crit},
		{Name: "levels", Usage: "levels", Description: "Show the experience needed per level", Handler: levels},
		{Name: "tarot", Usage: "tarot", Description: "Draw a tarot card", Handler: tarot},
		{Name: "sounds", Usage: "sounds", Description: "List the soundboard", Handler: listSounds},
		{Name: "sound", Usage: "sound <name>", Description: "Play a sound", Handler: playSound},
		{Name: "shush", Usage: "shush", Description: "Stop the current sound", Handler: shush},
		{Name: "soundboard", Usage: "soundboard [on|off]", Description: "Join or leave the voice channel", Handler: toggleSoundboard},
	}
}
