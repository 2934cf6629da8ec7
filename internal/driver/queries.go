package driver

var IndexQueries = []string{
	"CREATE INDEX skill_node_id IF NOT EXISTS FOR (n:SkillNode) ON (n.id)",
	"CREATE INDEX skill_node_type IF NOT EXISTS FOR (n:SkillNode) ON (n.type)",
}

const (
	GetSkillNodesQuery = `
		MATCH (n:SkillNode)
		RETURN n.id AS id, n.label AS label, n.type AS type,
			n.x AS x, n.y AS y, n.size AS size, n.color AS color
		ORDER BY n.order, n.id
	`

	GetSkillEdgesQuery = `
		MATCH (s:SkillNode)-[r:HAS_SKILL]->(t:SkillNode)
		RETURN r.id AS id, s.id AS source, t.id AS target, r.relationship AS relationship
		ORDER BY r.order, r.id
	`

	SaveSkillNodesQuery = `
		UNWIND $nodes AS node
		MERGE (n:SkillNode {id: node.id})
		SET n.label = node.label,
			n.type = node.type,
			n.x = node.x,
			n.y = node.y,
			n.size = node.size,
			n.color = node.color,
			n.order = node.order
		RETURN count(n) AS count
	`

	SaveSkillEdgesQuery = `
		UNWIND $edges AS edge
		MATCH (s:SkillNode {id: edge.source})
		MATCH (t:SkillNode {id: edge.target})
		MERGE (s)-[r:HAS_SKILL {id: edge.id}]->(t)
		SET r.relationship = edge.relationship,
			r.order = edge.order
		RETURN count(r) AS count
	`

	DeleteSkillGraphQuery = `
		MATCH (n:SkillNode)
		DETACH DELETE n
	`
)
