// Package lexical provides a BM25 index over an in-memory corpus snapshot.
//
// The index is built once from (doc id, text) pairs and is immutable
// afterwards, which makes every read path safe for concurrent use without
// locking. There is no incremental update; a corpus change means a rebuild.
//
// # Usage
//
//	idx := lexical.New(docs, lexical.WithK1(1.5), lexical.WithB(0.75))
//
//	ranking, err := idx.Retrieve("endocrine therapy", 5)
//	if err != nil {
//	    return err
//	}
//	for _, sd := range ranking {
//	    fmt.Println(sd.DocID, sd.Score)
//	}
//
// Retrieve scores every indexed document, including zero-score ones, so a
// large enough k always yields the full corpus ranking. Ties keep corpus
// enumeration order.
package lexical
