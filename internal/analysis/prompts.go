package analysis

import (
	"fmt"
	"strings"
)

const hanjaKnownNote = `Some proper nouns in the text are already written with their Hanja in parentheses, for example "철산고 (鐵山掌)", and have been collected. Find ALL the other proper nouns, the ones written in Hangul only.`

const hanjaNoneNote = `Identify and extract ALL proper nouns from the provided text.`

const nounTypes = `Proper noun types to extract:
- character names (people, beings, creatures)
- skill names (martial arts, magic, techniques, spells)
- character titles (honorifics, ranks, epithets)
- locations (places, buildings, countries, cities, realms, worlds)
- organizations (sects, clans, guilds, factions)
- item names (weapons, artifacts, tools, equipment, plants)
- any other proper noun unique to this story`

func extractionPrompt(genre string, hanjaKnown bool) string {
	note := hanjaNoneNote
	if hanjaKnown {
		note = hanjaKnownNote
	}

	return fmt.Sprintf(`You are an expert assistant specializing in %s. %s

%s

Rules:
1. Give the noun in Hangul.
2. When the text provides no Hanja, set "hanja" to "".
3. Skip common nouns and generic terms.
4. Focus on unique, story specific proper nouns.

Output: a single JSON array of objects with exactly the keys "hangul" and "hanja".
Example: [{"hangul": "이소룡", "hanja": ""}, {"hangul": "철산고", "hanja": "鐵山掌"}]`, genre, note, nounTypes)
}

func localExtractionPrompt(genre string) string {
	return fmt.Sprintf(`You are a named entity recognizer for %s. Identify and extract ALL proper nouns from the provided text.

Label every noun with exactly one of: NAME, TITLE, ORGANIZATION, SKILL, ITEM, MISC.
Locations use ORGANIZATION. When the text provides no Hanja, set "hanja" to "".
Skip common nouns, particles and generic terms.

Output: a single JSON array of objects with exactly the keys "hangul", "hanja" and "label".
Example: [{"hangul": "이소룡", "hanja": "", "label": "NAME"}, {"hangul": "화산파", "hanja": "華山派", "label": "ORGANIZATION"}]`, genre)
}

func categorizationPrompt(genre string, categories []string) string {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}

	return fmt.Sprintf(`You are an expert in %[1]s terminology and classification. Put each proper noun into exactly one of these categories: %[2]s.

Input: a JSON array of objects with "hangul" and "hanja".

Rules:
1. When "hanja" is not empty, use it first. It carries the meaning.
2. Otherwise judge the Hangul by its structure and the conventions of %[1]s.

Category definitions:
- "character names": personal names of characters, beings or creatures
- "skills and techniques": martial arts, spells, special abilities, combat moves
- "character titles": titles, ranks, honorifics, epithets, nicknames
- "locations and organizations": places, buildings, realms, sects, clans, guilds, factions
- "item names": weapons, artifacts, tools, equipment, special objects
- "misc": any other proper noun

Output: a JSON array with the SAME length and order as the input. Each object has "hangul", "hanja" and "category".
Example: [{"hangul": "이소룡", "hanja": "", "category": "character names"}, {"hangul": "소림사", "hanja": "少林寺", "category": "locations and organizations"}]`, genre, strings.Join(quoted, ", "))
}

func translationPrompt(genre string) string {
	return fmt.Sprintf(`You are an expert translator of %[1]s terminology. Give an accurate English translation for each proper noun.

Input: a JSON array of objects with "hangul", "hanja" and "category".

Rules:
1. Translate from the Hanja when it is not empty, otherwise from the Hangul. Use the category as context.
2. "character names": romanize only, as "FamilyName GivenName" with one space and no dashes or periods.
   Examples: "김천희" -> "Kim Cheonhee", "남궁하얀" -> "Namgung Hayan", "존 스미스" -> "John Smith".
3. Every other category: translate the meaning with terminology fitting %[1]s. Never romanize.
   Examples: "철산고" (鐵山掌) -> "Iron Mountain Palm", "소림사" (少林寺) -> "Shaolin Temple", "검성" (劍聖) -> "Sword Saint".
4. No romanized Hangul in brackets, no notes or explanations.

Output: a JSON array with the SAME length and order as the input. Each object has "hangul", "hanja", "category" and "english".
Example: [{"hangul": "이소룡", "hanja": "", "category": "character names", "english": "Lee Soryong"}]`, genre)
}

func hanjaGuessPrompt(genre string) string {
	return fmt.Sprintf(`You are an expert in Traditional Chinese characters (Hanja) and Korean. Predict the MOST LIKELY Traditional Chinese characters for Korean proper nouns whose "hanja" is empty.

Input: a JSON array of objects with "hangul", "hanja", "category" and "english".

Rules:
1. Only fill empty "hanja" fields and leave existing ones unchanged.
2. The English gives the meaning, the category the kind of characters, the Hangul the reading they must match.
3. Follow the Hanja conventions of %s.

Guidelines by category:
- "character names": standard name characters, e.g. 김 -> 金, 이 -> 李, 천희 -> 天熙
- "skills and techniques": e.g. "Iron Mountain Palm" -> 鐵山掌, "Flying Sword" -> 飛劍
- "character titles": e.g. "Sword Saint" -> 劍聖, "Martial Lord" -> 武尊
- "locations and organizations": e.g. "Shaolin Temple" -> 少林寺, "Martial Alliance" -> 武林盟
- "item names": e.g. "Heavenly Demon Sword" -> 天魔劍
- "misc": characters that best match the English meaning

Output: a JSON array with the SAME length and order as the input. Each object has "hangul", "hanja", "category" and "english".`, genre)
}
