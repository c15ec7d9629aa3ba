package prompts

// ============================================================================
// Transcript Analysis (gpt-4o)
// ============================================================================

// AnalysisSystemPrompt defines the analyst role for transcript analysis.
const AnalysisSystemPrompt = `Tu es un expert en communication, analyse vocale et psychologie du langage. Tu analyses les transcriptions vidéo avec une expertise approfondie pour fournir des insights actionnables, constructifs et précis. Tu réponds uniquement en JSON valide.`

// AnalysisUserPrompt requests the fixed analysis schema. The transcript
// is appended after the instructions, truncated to AnalysisMaxChars.
const AnalysisUserPrompt = `Analyse la transcription vidéo suivante et réponds avec un objet JSON strictement conforme à ce schéma :

{
  "summary": "Résumé concis et percutant (180-250 mots)",
  "key_topics": ["liste", "des", "thèmes", "principaux"],
  "entities": ["personnes", "organisations", "lieux", "produits mentionnés"],
  "action_items": ["actions concrètes proposées ou implicites"],
  "insights": ["observations supplémentaires utiles au locuteur"]
}

IMPORTANT : Sois précis, constructif et fournis des insights actionnables. Ne réponds qu'avec le JSON.

Transcription :
`

// AnalysisMaxChars bounds the transcript length sent for analysis.
const AnalysisMaxChars = 8000

// AnalysisRequiredKeys are the top-level keys the model must return.
var AnalysisRequiredKeys = []string{"summary", "key_topics", "entities", "action_items", "insights"}

// ============================================================================
// Project Recommendations (gpt-4o-mini)
// ============================================================================

// RecommendationSystemPrompt defines the role for collaboration suggestions.
const RecommendationSystemPrompt = `Tu es un conseiller en collaboration créative pour des créateurs de pitchs vidéo. À partir de deux profils et de leur score de compatibilité, tu proposes un projet commun réaliste et motivant. Tu réponds uniquement en JSON valide.`

// RecommendationUserPrompt is the template filled with both parties'
// signs and the match score.
const RecommendationUserPrompt = `Deux créateurs ont un score de compatibilité de %.2f.
Profil A : Soleil %s, Lune %s, Ascendant %s.
Profil B : Soleil %s, Lune %s, Ascendant %s.

Propose un projet de collaboration vidéo et réponds avec un objet JSON strictement conforme à ce schéma :

{
  "title": "titre du projet (max 80 caractères)",
  "description": "description concrète du projet (2-3 phrases)",
  "category": "catégorie courte (ex: Stratégie, Création, Production)",
  "reasoning": "pourquoi ce projet convient à ces deux profils"
}`

// RecommendationRequiredKeys are the top-level keys the model must return.
var RecommendationRequiredKeys = []string{"title", "description", "category", "reasoning"}

// ============================================================================
// Symbolic Narrative (gpt-4o-mini)
// ============================================================================

// NarrativeSystemPrompt defines the role for symbolic profile narration.
const NarrativeSystemPrompt = `Tu es un coach symbolique qui traduit un thème astral en un portrait inspirant et accessible. Ton ton est chaleureux, jamais ésotérique au point d'être obscur. Tu réponds uniquement en JSON valide.`

// NarrativeUserPrompt is the template filled with the three canonical
// signs, the dominant element, and the sun sign's modality.
const NarrativeUserPrompt = `Thème astral : Soleil %s, Lune %s, Ascendant %s. Élément dominant : %s. Modalité : %s.

Rédige le portrait symbolique et réponds avec un objet JSON strictement conforme à ce schéma :

{
  "profile_text": "portrait en 3-4 phrases",
  "phrase_synchronie": "slogan percutant, max 120 caractères, style mantra",
  "archetype": "nom d'archétype court (ex: Le Bâtisseur, L'Éclaireur)",
  "couleur_dominante": "une couleur symbolique"
}`

// NarrativeRequiredKeys are the top-level keys the model must return.
var NarrativeRequiredKeys = []string{"profile_text", "phrase_synchronie", "archetype", "couleur_dominante"}
