// Package carefinder is an embeddable client for the carefinder search core.
//
// It takes a free-text request for help and returns ranked mental-health
// services from a PostgREST-backed directory. Vector ranking runs first;
// keyword search over the directory answers when ranking is unavailable.
//
//	client, err := carefinder.New(ctx,
//	    carefinder.WithDirectory("https://db.example.org", apiKey),
//	    carefinder.WithOpenAI(openaiKey, "text-embedding-3-small", 1536),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	resp, err := client.Search(ctx, "free counselling near Carlton", &carefinder.SearchOptions{Limit: 5})
package carefinder
