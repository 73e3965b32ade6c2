package agent

import (
	"strconv"
	"strings"
)

// intentPrompt is the fixed instruction template sent to the completion
// service. {current_year} is the reference year used to resolve relative
// dates, {user_input} the literal utterance.
const intentPrompt = `Analizza il comando utente e genera un JSON strutturato.
Considera questi sinonimi:
- Creazione: aggiungi, crea, nuovo, inserisci, programma
- Eliminazione: cancella, elimina, rimuovi, annulla
- Modifica: modifica, cambia, aggiorna, sposta, riprogramma, rinvia
- Lista: mostra, elenca, lista, visualizza, vedi, dammi, quali

Linee guida critiche:
1. Il campo 'summary' DEVE contenere SOLO il titolo base dell'evento
2. Rimuovi ASSOLUTAMENTE riferimenti temporali dal 'summary' (es. "delle 15", "del 12 marzo")
3. Per 'modify'/'delete' senza event_id:
   - 'date' e 'time' devono sempre riflettere la data/ora ORIGINALE
   - Usa il formato ISO8601 per tutti i campi temporali
4. Per le azioni di modifica, includi SEMPRE sia i nuovi orari (start/end) che quelli originali (date/time)

Struttura JSON:
{
    "action": "add|delete|modify|list",
    "summary": "stringa",
    "start": "YYYY-MM-DDTHH:MM:SS",
    "end": "YYYY-MM-DDTHH:MM:SS",
    "event_id": "stringa",
    "date": "YYYY-MM-DD",
    "time": "HH:MM"
}

Istruzioni:
1. Per le date relative (es. "domani", "lunedì prossimo") usa la data assoluta
2. Per gli orari: "alle 15" -> 15:00:00, "16:30" -> 16:30:00
3. Se mancano informazioni critiche, deducile dal contesto
4. IMPORTANTE: Se non viene specificato l'anno usa sempre l'anno corrente ({current_year}) per tutte le date
5. Per l'azione "list", il campo "summary" è opzionale e può essere usato come filtro
6. Se l'evento da modificare va cercato in agenda, usa event_id = "ID_DA_CERCARE_IN_DB"

ATTENZIONE: Il 'summary' DEVE corrispondere ESATTAMENTE al titolo esistente nell'agenda.

Istruzioni chiave:
1. Per comandi tipo "sposta X da Y a Z":
   - 'summary' = X (senza riferimenti a Y/Z)
   - 'date'/'time' = Y (orario originale)
   - 'start'/'end' = Z (nuovo orario)
2. Rispondi SOLO con il JSON, senza testo aggiuntivo.

Esempi corretti:
- Input: "Inserisci una riunione con il team domani pomeriggio alle 14 per 2 ore"
  Output: {
    "action": "add",
    "summary": "riunione con il team",
    "start": "{current_year}-05-30T14:00:00",
    "end": "{current_year}-05-30T16:00:00"
  }
- Input: "Elimina l'appuntamento del 5 giugno alle 9:30"
  Output: {
    "action": "delete",
    "summary": "appuntamento",
    "date": "{current_year}-06-05",
    "time": "09:30"
  }
- Input: "Rinvia la riunione di oggi alle 14 a dopodomani alle 16"
  Output: {
    "action": "modify",
    "event_id": "ID_DA_CERCARE_IN_DB",
    "summary": "riunione",
    "date": "{current_year}-03-08",
    "time": "14:00",
    "start": "{current_year}-03-10T16:00:00",
    "end": "{current_year}-03-10T17:00:00"
  }
- Input: "Mostrami tutti gli eventi"
  Output: {
    "action": "list"
  }
- Input: "Elenca le riunioni di questa settimana"
  Output: {
    "action": "list",
    "summary": "riunioni"
  }

Input corrente: {user_input}`

// buildPrompt substitutes the reference year and the utterance into the
// instruction template.
func buildPrompt(utterance string, referenceYear int) string {
	prompt := strings.ReplaceAll(intentPrompt, "{current_year}", strconv.Itoa(referenceYear))
	return strings.ReplaceAll(prompt, "{user_input}", utterance)
}
