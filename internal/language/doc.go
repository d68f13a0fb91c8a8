// Package language classifies catalog text by source language.
//
// Detection sits behind the Detector interface; the default implementation
// wraps whatlanggo. Detected codes are normalized to ISO 639-1 and mapped to
// French display labels. Codes outside the table become "Langue non
// supportée" and detection failures become "Erreur_langue", so every input
// yields a label.
package language
